package rpc

import "github.com/dshills/sweep/internal/haystack"

// WireField is the JSON shape of a haystack.Field on the wire (§4.2,
// §4.5): `ref`, when present, points at a `field_register`ed template and
// the remaining attributes are optional overrides.
type WireField struct {
	Text   string `json:"text,omitempty"`
	Active bool   `json:"active,omitempty"`
	Style  string `json:"style,omitempty"`
	Glyph  string `json:"glyph,omitempty"`
	Ref    *int   `json:"ref,omitempty"`
}

func (f WireField) toField() haystack.Field {
	out := haystack.Field{Text: f.Text, Active: f.Active, Style: f.Style, Glyph: f.Glyph}
	if f.Ref != nil {
		out.Ref = *f.Ref
		out.HasRef = true
	}
	return out
}

func fromField(f haystack.Field) WireField {
	out := WireField{Text: f.Text, Active: f.Active, Style: f.Style, Glyph: f.Glyph}
	if f.HasRef {
		ref := f.Ref
		out.Ref = &ref
	}
	return out
}

// WireItem is the JSON shape of a haystack.Item (§3, §4.5): fields grouped
// into target/right/preview regions, plus a verbatim payload.
type WireItem struct {
	Target  []WireField `json:"target,omitempty"`
	Right   []WireField `json:"right,omitempty"`
	Preview []WireField `json:"preview,omitempty"`
	Payload any         `json:"payload,omitempty"`
}

// ItemToWire converts a haystack.Item to its wire shape, for callers outside
// this package that need to emit one as event params (the event loop's
// `select` event, §4.5/§4.6).
func ItemToWire(it haystack.Item) WireItem { return fromItem(it) }

// WireToItem converts a decoded WireItem back to a haystack.Item, for
// callers outside this package parsing the `--json` stdin format (§6),
// which shares the RPC Item schema.
func WireToItem(w WireItem) haystack.Item { return w.toItem() }

func (it WireItem) toItem() haystack.Item {
	return haystack.Item{
		Target:  toFields(it.Target),
		Right:   toFields(it.Right),
		Preview: toFields(it.Preview),
		Payload: it.Payload,
	}
}

func fromItem(it haystack.Item) WireItem {
	return WireItem{
		Target:  fromFields(it.Target),
		Right:   fromFields(it.Right),
		Preview: fromFields(it.Preview),
		Payload: it.Payload,
	}
}

func toFields(in []WireField) []haystack.Field {
	if in == nil {
		return nil
	}
	out := make([]haystack.Field, len(in))
	for i, f := range in {
		out[i] = f.toField()
	}
	return out
}

func fromFields(in []haystack.Field) []WireField {
	if in == nil {
		return nil
	}
	out := make([]WireField, len(in))
	for i, f := range in {
		out[i] = fromField(f)
	}
	return out
}
