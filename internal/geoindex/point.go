package geoindex

// Point is one infrastructure point. The collection is loaded once at startup
// and never mutated, which is what makes lock-free concurrent reads safe.
type Point struct {
	// Category is the tag derived from the source file the point came from
	// (e.g. "Museus", "Carris_Metropolitana").
	Category  string
	Latitude  float64
	Longitude float64
	// Properties carries the source feature's open attribute map. The loader
	// guarantees a "type" key is present.
	Properties map[string]any
}

// TypeAttr returns the point's "type" attribute, or "" when it is absent or
// not a string.
func (p *Point) TypeAttr() string {
	t, _ := p.Properties["type"].(string)
	return t
}
