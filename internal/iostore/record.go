package iostore

import (
	"github.com/gnames/gnioc/pkg/ioc"
)

// VersionFile keeps the version of the stored taxonomy and the stems of
// its root taxa in their original order.
const VersionFile = "version.json"

type versionRecord struct {
	Version string   `json:"version"`
	Roots   []string `json:"roots,omitempty"`
}

// storedTaxon is a taxon as it is kept on disk: every field of the taxon
// except that subtaxa are referenced by their file stems.
type storedTaxon struct {
	ID               string            `json:"id"`
	Rank             ioc.Rank          `json:"rank"`
	Name             string            `json:"name"`
	BinomialName     string            `json:"binomial_name,omitempty"`
	TrinomialName    string            `json:"trinomial_name,omitempty"`
	Authority        string            `json:"authority,omitempty"`
	BreedingRange    string            `json:"breeding_range,omitempty"`
	NonbreedingRange string            `json:"nonbreeding_range,omitempty"`
	Comment          string            `json:"comment,omitempty"`
	CommonNames      map[string]string `json:"common_names"`
	Extinct          *bool             `json:"extinct,omitempty"`
	Code             string            `json:"code,omitempty"`
	FollowingEntries string            `json:"following_entries,omitempty"`
	Lists            map[string]string `json:"lists,omitempty"`
	Subtaxa          []string          `json:"subtaxa"`
}

func newStoredTaxon(t *ioc.Taxon) storedTaxon {
	res := storedTaxon{
		ID:               t.ID,
		Rank:             t.Rank,
		Name:             t.Name,
		BinomialName:     t.BinomialName,
		TrinomialName:    t.TrinomialName,
		Authority:        t.Authority,
		BreedingRange:    t.BreedingRange,
		NonbreedingRange: t.NonbreedingRange,
		Comment:          t.Comment,
		CommonNames:      t.CommonNames,
		Extinct:          t.Extinct,
		Code:             t.Code,
		FollowingEntries: t.FollowingEntries,
		Lists:            t.Lists,
		Subtaxa:          make([]string, len(t.Subtaxa)),
	}
	if res.CommonNames == nil {
		res.CommonNames = make(map[string]string)
	}
	for i, st := range t.Subtaxa {
		res.Subtaxa[i] = st.Stem()
	}
	return res
}

// taxon converts the record back to a taxon without subtaxa.
func (st *storedTaxon) taxon() *ioc.Taxon {
	res := &ioc.Taxon{
		ID:               st.ID,
		Rank:             st.Rank,
		Name:             st.Name,
		BinomialName:     st.BinomialName,
		TrinomialName:    st.TrinomialName,
		Authority:        st.Authority,
		BreedingRange:    st.BreedingRange,
		NonbreedingRange: st.NonbreedingRange,
		Comment:          st.Comment,
		CommonNames:      st.CommonNames,
		Extinct:          st.Extinct,
		Code:             st.Code,
		FollowingEntries: st.FollowingEntries,
		Lists:            st.Lists,
		Subtaxa:          make([]*ioc.Taxon, 0, len(st.Subtaxa)),
	}
	if res.CommonNames == nil {
		res.CommonNames = make(map[string]string)
	}
	return res
}
