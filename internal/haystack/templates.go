package haystack

import "sync"

// Templates is the field-template registry named by the `field_register`
// RPC method (§4.5, §9): an arena of pre-registered fields addressed by
// integer handle, so items can carry a handle instead of repeating a glyph
// or style string on the wire. Handles are never removed, so the registry
// is a simple append-only slice guarded by a mutex, in the spirit of the
// teacher's name-keyed keymap registry but keyed by dense integer instead.
type Templates struct {
	mu     sync.RWMutex
	fields []Field
}

// NewTemplates creates an empty template registry.
func NewTemplates() *Templates {
	return &Templates{}
}

// Register adds a field template and returns its handle.
func (t *Templates) Register(f Field) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fields = append(t.fields, f)
	return len(t.fields) - 1
}

// Resolve returns the registered field for a handle. ok is false for an
// unknown handle.
func (t *Templates) Resolve(handle int) (Field, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if handle < 0 || handle >= len(t.fields) {
		return Field{}, false
	}
	return t.fields[handle], true
}

// ResolveField fills in f's unset Text/Style/Glyph from its referenced
// template, if any. If f has no Ref, it is returned unchanged.
func (t *Templates) ResolveField(f Field) Field {
	if !f.HasRef {
		return f
	}
	tmpl, ok := t.Resolve(f.Ref)
	if !ok {
		return f
	}
	if f.Text == "" {
		f.Text = tmpl.Text
	}
	if f.Style == "" {
		f.Style = tmpl.Style
	}
	if f.Glyph == "" {
		f.Glyph = tmpl.Glyph
	}
	return f
}
