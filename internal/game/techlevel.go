package game

// TechField :
// Describes one of the six fields of research an empire can
// invest into.
type TechField string

// Possible values for a research field.
const (
	Biotechnology TechField = "biotechnology"
	Electronics   TechField = "electronics"
	Energy        TechField = "energy"
	Propulsion    TechField = "propulsion"
	Weapons       TechField = "weapons"
	Construction  TechField = "construction"
)

// TechFields :
// Lists the research fields in a fixed order, which is the
// iteration order used everywhere a deterministic traversal
// is needed.
var TechFields = []TechField{
	Biotechnology,
	Electronics,
	Energy,
	Propulsion,
	Weapons,
	Construction,
}

// TechLevel :
// Describes either the attained research levels of an empire
// or the per-field priority weights of its research settings.
// Missing fields count as zero.
type TechLevel map[TechField]int

// NewTechLevel :
// Builds a tech level with every field at zero.
//
// Returns the tech level.
func NewTechLevel() TechLevel {
	levels := make(TechLevel, len(TechFields))
	for _, field := range TechFields {
		levels[field] = 0
	}

	return levels
}

// Meets :
// Determines whether this tech level dominates the input one,
// meaning that every field is at least the corresponding field
// of the input.
//
// The `other` defines the level to compare to.
//
// Returns `true` if this level dominates the input one.
func (t TechLevel) Meets(other TechLevel) bool {
	for _, field := range TechFields {
		if t[field] < other[field] {
			return false
		}
	}

	return true
}

// Equals :
// Determines whether this tech level is field-by-field equal
// to the input one.
//
// The `other` defines the level to compare to.
//
// Returns `true` in case of equality.
func (t TechLevel) Equals(other TechLevel) bool {
	for _, field := range TechFields {
		if t[field] != other[field] {
			return false
		}
	}

	return true
}

// Clone :
// Produces an independent copy of this tech level.
//
// Returns the copy.
func (t TechLevel) Clone() TechLevel {
	clone := make(TechLevel, len(t))
	for field, level := range t {
		clone[field] = level
	}

	return clone
}

// TopField :
// Provides the field carrying the highest weight in this tech
// level, which is where research points are invested. Ties are
// broken by the fixed field order.
//
// Returns the field.
func (t TechLevel) TopField() TechField {
	top := TechFields[0]
	for _, field := range TechFields {
		if t[field] > t[top] {
			top = field
		}
	}

	return top
}
