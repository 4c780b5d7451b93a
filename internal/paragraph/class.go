package paragraph

// Class is the classification label of a paragraph.
// The zero value means "not classified yet".
type Class string

const (
	ClassGood     Class = "good"
	ClassBad      Class = "bad"
	ClassShort    Class = "short"
	ClassNearGood Class = "neargood"
)

// IsDecided reports whether c is one of the two final labels.
func (c Class) IsDecided() bool {
	return c == ClassGood || c == ClassBad
}

func (c Class) String() string {
	return string(c)
}
