package ioc

import "strings"

// MasterRow is one taxon as it appears in the Master file.
type MasterRow struct {
	Rank Rank
	// Name is the taxon's own label. For species and subspecies it is
	// normally the epithet, but a full binomial or trinomial that starts
	// with the parent's key is accepted too.
	Name             string
	EnglishName      string
	Authority        string
	BreedingRange    string
	NonbreedingRange string
	Comment          string
}

// Builder converts Master rows, which come in depth-first pre-order, into
// a Taxonomy. It keeps a stack with the current ancestor of every level.
type Builder struct {
	tx    *Taxonomy
	stack []*Taxon
}

// NewBuilder creates a Builder for a taxonomy of the given version.
func NewBuilder(version string) *Builder {
	return &Builder{tx: New(version)}
}

// Add places one row into the forest. Rows whose rank does not fit under
// the current ancestors return HierarchyError, repeated keys return
// DuplicateKeyError. A rejected row leaves the Builder unchanged.
func (b *Builder) Add(row MasterRow) error {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return EmptyNameError(row.Rank)
	}
	if !row.Rank.IsKnown() {
		return HierarchyError(name, row.Rank, UnknownRank)
	}

	depth := len(b.stack)
	for depth > 0 && b.stack[depth-1].Rank.Level() >= row.Rank.Level() {
		depth--
	}

	var parent *Taxon
	if depth > 0 {
		parent = b.stack[depth-1]
	}
	if row.Rank != Infraclass {
		if parent == nil {
			return HierarchyError(name, row.Rank, UnknownRank)
		}
		if !parent.Rank.IsParentOf(row.Rank) {
			return HierarchyError(name, row.Rank, parent.Rank)
		}
	}

	t := b.newTaxon(row, name, parent)
	key := t.Key()
	if prev, ok := b.tx.Index[key]; ok {
		return DuplicateKeyError(key, prev.Rank, t.Rank)
	}

	if parent == nil {
		b.tx.Taxa = append(b.tx.Taxa, t)
	} else {
		parent.Subtaxa = append(parent.Subtaxa, t)
	}
	b.stack = append(b.stack[:depth], t)
	b.tx.Index[key] = t
	b.tx.Stats.Inc(t.Rank)
	return nil
}

// Taxonomy returns the taxonomy built so far.
func (b *Builder) Taxonomy() *Taxonomy {
	return b.tx
}

func (b *Builder) newTaxon(row MasterRow, name string, parent *Taxon) *Taxon {
	var full string
	switch row.Rank {
	case Species, Subspecies:
		prefix := parent.Key()
		if strings.HasPrefix(name, prefix+" ") {
			full = name
			name = strings.TrimPrefix(name, prefix+" ")
		} else {
			full = prefix + " " + name
		}
	}

	res := NewTaxon(row.Rank, name, full, full)
	res.Authority = row.Authority
	res.BreedingRange = row.BreedingRange
	res.NonbreedingRange = row.NonbreedingRange
	res.Comment = row.Comment
	if row.EnglishName != "" {
		res.CommonNames["English"] = row.EnglishName
	}
	return res
}
