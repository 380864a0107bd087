// Package haystack implements the append-only item store (C2): items split
// into searchable fields, grouped into target/right/preview regions, plus
// the field-template registry used to deduplicate repeated glyphs on the
// wire.
package haystack

// Region identifies which part of an item a field belongs to.
type Region int

const (
	// RegionTarget is the main left-side content; always rendered.
	RegionTarget Region = iota
	// RegionRight holds right-aligned annotations.
	RegionRight
	// RegionPreview holds content revealed only when previewing.
	RegionPreview
)

// Field is an immutable string fragment plus matching/presentation flags.
// A field's text never changes once it is part of the haystack.
type Field struct {
	// Text is the fragment's content.
	Text string

	// Active marks whether this fragment participates in matching.
	Active bool

	// Style is an opaque presentation hint (e.g. a theme attribute name).
	Style string

	// Glyph is an optional leading icon/marker for display.
	Glyph string

	// Ref, when HasRef is set, points at a pre-registered template field
	// (handle 0 is valid); unset attributes here are inherited from the
	// template at render time.
	Ref    int
	HasRef bool
}

// Item is an identified, ordered item in the haystack: fields grouped into
// three regions, a stable id assigned at insertion, and an opaque payload
// returned verbatim on selection.
type Item struct {
	// ID is the monotone identifier assigned at insertion time.
	ID int

	Target  []Field
	Right   []Field
	Preview []Field

	// Payload is returned verbatim to the caller on selection.
	Payload any
}

// ActiveFields returns the text of every active field across all regions,
// in region order (target, right, preview), alongside a parallel slice
// identifying which (region, field-index) each text came from.
func (it Item) ActiveFields() (texts []string, locs []FieldLoc) {
	regions := []struct {
		region Region
		fields []Field
	}{
		{RegionTarget, it.Target},
		{RegionRight, it.Right},
		{RegionPreview, it.Preview},
	}

	for _, r := range regions {
		for i, f := range r.fields {
			if !f.Active {
				continue
			}
			texts = append(texts, f.Text)
			locs = append(locs, FieldLoc{Region: r.region, Index: i})
		}
	}
	return texts, locs
}

// FieldLoc identifies a field within an item by region and index.
type FieldLoc struct {
	Region Region
	Index  int
}
