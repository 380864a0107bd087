// Package stdin turns the two stdin candidate formats named in §6 into
// haystack.Item values: the default one-line-per-candidate format (with
// optional --nth/-d field splitting) and the --json format (one wire Item
// per line, the same schema the RPC control plane uses).
package stdin
