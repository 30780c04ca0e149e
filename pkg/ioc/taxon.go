package ioc

import (
	"strings"

	"github.com/gnames/gnuuid"
)

// Taxon is a node of the IOC taxonomy.
type Taxon struct {
	// ID is UUID v5 generated from the unique key of the taxon.
	ID string `json:"id"`

	Rank Rank `json:"rank"`

	// Name is the taxon's own label. For species and subspecies it is the
	// epithet only.
	Name string `json:"name"`

	// BinomialName is set for species only.
	BinomialName string `json:"binomial_name,omitempty"`

	// TrinomialName is set for subspecies only.
	TrinomialName string `json:"trinomial_name,omitempty"`

	Authority        string `json:"authority,omitempty"`
	BreedingRange    string `json:"breeding_range,omitempty"`
	NonbreedingRange string `json:"nonbreeding_range,omitempty"`
	Comment          string `json:"comment,omitempty"`

	// CommonNames maps a language to the common name in that language.
	CommonNames map[string]string `json:"common_names"`

	// Extinct and Code come from the Complementary file and are set only
	// for genera, species and subspecies.
	Extinct *bool  `json:"extinct,omitempty"`
	Code    string `json:"code,omitempty"`

	// FollowingEntries and Lists come from the Other Lists file.
	FollowingEntries string            `json:"following_entries,omitempty"`
	Lists            map[string]string `json:"lists,omitempty"`

	// Subtaxa keeps children in the order of the Master file.
	Subtaxa []*Taxon `json:"subtaxa"`
}

// NewTaxon creates a taxon with its key-dependent fields filled in.
// The binomial and trinomial names are used only for species and
// subspecies respectively.
func NewTaxon(rank Rank, name, binomial, trinomial string) *Taxon {
	res := &Taxon{
		Rank:        rank,
		Name:        name,
		CommonNames: make(map[string]string),
		Subtaxa:     make([]*Taxon, 0),
	}
	switch rank {
	case Species:
		res.BinomialName = binomial
	case Subspecies:
		res.TrinomialName = trinomial
	}
	res.ID = gnuuid.New(res.Key()).String()
	return res
}

// Key returns the unique key of the taxon: the binomial name for species,
// the trinomial name for subspecies, and the name for everything else.
func (t *Taxon) Key() string {
	switch t.Rank {
	case Species:
		return t.BinomialName
	case Subspecies:
		return t.TrinomialName
	default:
		return t.Name
	}
}

// Stem returns the file-name stem of the taxon in the store.
func (t *Taxon) Stem() string {
	return Stem(t.Key())
}

// Stem converts a unique key to a file-name stem.
func Stem(key string) string {
	return strings.ReplaceAll(key, " ", "_")
}
