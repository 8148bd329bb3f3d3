package world

import "fmt"

// Tier is one of the five ordered elevation levels a cell can sit on
type Tier int

// Tier constants, ordered from lowest to highest
const (
	MinusMax Tier = iota
	MinusMin
	None
	PlusMin
	PlusMax
)

// AllTiers returns every tier from lowest to highest
func AllTiers() []Tier {
	return []Tier{MinusMax, MinusMin, None, PlusMin, PlusMax}
}

// String returns the string representation of a tier
func (t Tier) String() string {
	switch t {
	case MinusMax:
		return "MinusMax"
	case MinusMin:
		return "MinusMin"
	case None:
		return "None"
	case PlusMin:
		return "PlusMin"
	case PlusMax:
		return "PlusMax"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// IsValid returns true if t is one of the five tiers
func (t Tier) IsValid() bool {
	return t >= MinusMax && t <= PlusMax
}

// IsExtreme reports whether t is MinusMax or PlusMax
func (t Tier) IsExtreme() bool {
	return t == MinusMax || t == PlusMax
}

// Band is the closed numeric range an elevation magnitude is drawn from
type Band struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Width returns Max - Min
func (b Band) Width() float64 {
	return b.Max - b.Min
}

// Contains reports whether v lies within the band
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Bands maps each tier to its magnitude band
type Bands map[Tier]Band

// DefaultBands returns the stock magnitude bands
func DefaultBands() Bands {
	return Bands{
		PlusMax:  {Min: 60, Max: 85},
		PlusMin:  {Min: 15, Max: 55},
		None:     {Min: 0, Max: 0},
		MinusMin: {Min: -55, Max: -15},
		MinusMax: {Min: -85, Max: -60},
	}
}

// Clone returns a copy of the bands
func (b Bands) Clone() Bands {
	out := make(Bands, len(b))
	for tier, band := range b {
		out[tier] = band
	}
	return out
}
