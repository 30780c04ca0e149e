package ioc

import "strings"

// Rank is a taxonomic level of the IOC list.
type Rank string

const (
	UnknownRank Rank = ""
	Infraclass  Rank = "Infraclass"
	Order       Rank = "Order"
	Family      Rank = "Family"
	Genus       Rank = "Genus"
	Species     Rank = "Species"
	Subspecies  Rank = "Subspecies"
)

// Ranks lists all ranks from the top of the hierarchy down.
var Ranks = []Rank{Infraclass, Order, Family, Genus, Species, Subspecies}

var rankLevel = map[Rank]int{
	Infraclass: 1,
	Order:      2,
	Family:     3,
	Genus:      4,
	Species:    5,
	Subspecies: 6,
}

// NewRank converts a string to a Rank, ignoring case and surrounding
// spaces. Unknown strings return UnknownRank.
func NewRank(s string) Rank {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range Ranks {
		if strings.ToLower(string(r)) == s {
			return r
		}
	}
	return UnknownRank
}

// Level returns position of the rank in the hierarchy, starting from 1 for
// Infraclass. UnknownRank has level 0.
func (r Rank) Level() int {
	return rankLevel[r]
}

// IsKnown is true for the six IOC ranks.
func (r Rank) IsKnown() bool {
	return r.Level() > 0
}

// IsParentOf is true if r is exactly one level above child.
func (r Rank) IsParentOf(child Rank) bool {
	return r.IsKnown() && child.Level() == r.Level()+1
}

// HasComplementaryInfo is true for ranks that can receive extinct flags and
// codes from the Complementary file.
func (r Rank) HasComplementaryInfo() bool {
	switch r {
	case Genus, Species, Subspecies:
		return true
	default:
		return false
	}
}
