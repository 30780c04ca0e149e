package ioc

import "maps"

// OtherListsEntry holds the data of one taxon from the Other Lists file.
type OtherListsEntry struct {
	FollowingEntries string
	Lists            map[string]string
}

// ComplementaryEntry holds the data of one taxon from the Complementary
// file.
type ComplementaryEntry struct {
	Extinct bool
	Code    string
}

// The merge functions iterate the flat index, so entries of auxiliary
// files that are unknown to the Master taxonomy are ignored. Each returns
// the number of taxa it changed.

// AddTaxonomies copies following entries and lists from the Other Lists
// file, replacing previous values.
func (tx *Taxonomy) AddTaxonomies(entries map[string]OtherListsEntry) int {
	var res int
	for key, t := range tx.Index {
		e, ok := entries[key]
		if !ok {
			continue
		}
		t.FollowingEntries = e.FollowingEntries
		t.Lists = maps.Clone(e.Lists)
		res++
	}
	return res
}

// AddLanguages adds common names from the Multilingual file. Names for a
// language that is already present are replaced by the auxiliary value.
func (tx *Taxonomy) AddLanguages(names map[string]map[string]string) int {
	var res int
	for key, t := range tx.Index {
		langs, ok := names[key]
		if !ok {
			continue
		}
		if t.CommonNames == nil {
			t.CommonNames = make(map[string]string, len(langs))
		}
		maps.Copy(t.CommonNames, langs)
		res++
	}
	return res
}

// AddComplementaryInfo copies the extinct flag and code from the
// Complementary file to genera, species and subspecies, replacing previous
// values. Taxa of other ranks are left untouched.
func (tx *Taxonomy) AddComplementaryInfo(
	entries map[string]ComplementaryEntry,
) int {
	var res int
	for key, t := range tx.Index {
		e, ok := entries[key]
		if !ok || !t.Rank.HasComplementaryInfo() {
			continue
		}
		extinct := e.Extinct
		t.Extinct = &extinct
		t.Code = e.Code
		res++
	}
	return res
}
