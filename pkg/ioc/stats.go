package ioc

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Stats counts taxa per rank.
type Stats struct {
	InfraclassCount int `json:"infraclass_count"`
	OrderCount      int `json:"order_count"`
	FamilyCount     int `json:"family_count"`
	GenusCount      int `json:"genus_count"`
	SpeciesCount    int `json:"species_count"`
	SubspeciesCount int `json:"subspecies_count"`
}

// Inc increments the counter of the given rank.
func (s *Stats) Inc(r Rank) {
	switch r {
	case Infraclass:
		s.InfraclassCount++
	case Order:
		s.OrderCount++
	case Family:
		s.FamilyCount++
	case Genus:
		s.GenusCount++
	case Species:
		s.SpeciesCount++
	case Subspecies:
		s.SubspeciesCount++
	}
}

// Total returns the sum of all counters.
func (s Stats) Total() int {
	return s.InfraclassCount + s.OrderCount + s.FamilyCount +
		s.GenusCount + s.SpeciesCount + s.SubspeciesCount
}

// Summary formats statistics for the console.
func (s Stats) Summary(version string) string {
	var b strings.Builder
	c := func(i int) string { return humanize.Comma(int64(i)) }
	b.WriteString("Taxonomy statistics:\n")
	fmt.Fprintf(&b, "  Taxonomy: IOC %s\n", version)
	fmt.Fprintf(&b, "  Infraclasses: %s\n", c(s.InfraclassCount))
	fmt.Fprintf(&b, "  Orders: %s\n", c(s.OrderCount))
	fmt.Fprintf(&b, "  Families: %s\n", c(s.FamilyCount))
	fmt.Fprintf(&b, "  Genus: %s\n", c(s.GenusCount))
	fmt.Fprintf(&b, "  Species: %s\n", c(s.SpeciesCount))
	fmt.Fprintf(&b, "  Subspecies: %s\n", c(s.SubspeciesCount))
	fmt.Fprintf(&b, "  Total number of taxa: %s\n", c(s.Total()))
	return b.String()
}
