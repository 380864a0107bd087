// Package keymap implements the picker's chord-sequence binding table
// (§4.4, §9): a trie over key.Sequence values that maps a space-separated
// chord sequence ("ctrl+x ctrl+c") to an action tag. The trie has no clock:
// the timeout that resets a pending prefix is kept by its caller.
//
// This is a direct generalization of the teacher's PrefixTree
// (internal/input/keymap/registry.go in the teacher lineage): the same
// "insert a sequence, walk it chord by chord, recognize prefixes" shape,
// with the teacher's mode/filetype/when-condition dimensions dropped since
// the picker has no modes.
package keymap
