package ioc

import (
	"github.com/gnames/gnfmt"
)

// Taxonomy is the merged IOC World Bird List: a forest of Infraclass roots
// and a flat index from unique keys to the same nodes.
type Taxonomy struct {
	// Version of the IOC list, for example "14.1".
	Version string

	// Taxa are the Infraclass roots in source order.
	Taxa []*Taxon

	// Index maps unique keys to nodes of the forest. It does not own the
	// nodes and can always be rebuilt with Reindex.
	Index map[string]*Taxon

	// Stats counts taxa per rank as they are created.
	Stats Stats
}

// New creates an empty Taxonomy of the given version.
func New(version string) *Taxonomy {
	return &Taxonomy{
		Version: version,
		Taxa:    make([]*Taxon, 0),
		Index:   make(map[string]*Taxon),
	}
}

// Walk visits every taxon depth-first in pre-order, stopping at the first
// error returned by fn.
func (tx *Taxonomy) Walk(fn func(*Taxon) error) error {
	var walk func(*Taxon) error
	walk = func(t *Taxon) error {
		if err := fn(t); err != nil {
			return err
		}
		for _, st := range t.Subtaxa {
			if err := walk(st); err != nil {
				return err
			}
		}
		return nil
	}
	for _, t := range tx.Taxa {
		if err := walk(t); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of taxa in the forest.
func (tx *Taxonomy) Len() int {
	var res int
	_ = tx.Walk(func(*Taxon) error {
		res++
		return nil
	})
	return res
}

// Reindex rebuilds the flat index from the forest. A key that occurs
// twice is reported as DuplicateKeyError.
func (tx *Taxonomy) Reindex() error {
	idx := make(map[string]*Taxon)
	err := tx.Walk(func(t *Taxon) error {
		key := t.Key()
		if prev, ok := idx[key]; ok {
			return DuplicateKeyError(key, prev.Rank, t.Rank)
		}
		idx[key] = t
		return nil
	})
	if err != nil {
		return err
	}
	tx.Index = idx
	return nil
}

// ToJSON renders the forest as indented JSON with nested subtaxa.
func (tx *Taxonomy) ToJSON() ([]byte, error) {
	enc := gnfmt.GNjson{Pretty: true}
	return enc.Encode(tx.Taxa)
}
