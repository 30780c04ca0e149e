package ioc_test

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnioc/pkg/errcode"
	"github.com/gnames/gnioc/pkg/ioc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func robinRows() []ioc.MasterRow {
	return []ioc.MasterRow{
		{Rank: ioc.Infraclass, Name: "Neoaves"},
		{Rank: ioc.Order, Name: "PASSERIFORMES"},
		{Rank: ioc.Family, Name: "Turdidae", EnglishName: "Thrushes"},
		{Rank: ioc.Genus, Name: "Turdus"},
		{
			Rank:          ioc.Species,
			Name:          "migratorius",
			EnglishName:   "American Robin",
			Authority:     "Linnaeus, 1766",
			BreedingRange: "NA",
		},
	}
}

func build(t *testing.T, rows []ioc.MasterRow) *ioc.Taxonomy {
	b := ioc.NewBuilder("14.1")
	for _, r := range rows {
		require.NoError(t, b.Add(r))
	}
	return b.Taxonomy()
}

func TestBuilderSingleLineage(t *testing.T) {
	tx := build(t, robinRows())

	assert.Equal(t, "14.1", tx.Version)
	assert.Len(t, tx.Index, 5)
	assert.Equal(t, ioc.Stats{
		InfraclassCount: 1,
		OrderCount:      1,
		FamilyCount:     1,
		GenusCount:      1,
		SpeciesCount:    1,
	}, tx.Stats)

	require.Len(t, tx.Taxa, 1)
	root := tx.Taxa[0]
	assert.Equal(t, ioc.Infraclass, root.Rank)
	assert.Same(t, root, tx.Index["Neoaves"])

	sp := tx.Index["Turdus migratorius"]
	require.NotNil(t, sp)
	assert.Equal(t, "migratorius", sp.Name)
	assert.Equal(t, "Turdus migratorius", sp.BinomialName)
	assert.Empty(t, sp.TrinomialName)
	assert.Equal(t, "American Robin", sp.CommonNames["English"])
	assert.Equal(t, "Linnaeus, 1766", sp.Authority)
	assert.NotNil(t, sp.Subtaxa)
	assert.Empty(t, sp.Subtaxa)

	genus := tx.Index["Turdus"]
	require.Len(t, genus.Subtaxa, 1)
	assert.Same(t, sp, genus.Subtaxa[0])
	assert.Equal(t, "Thrushes", tx.Index["Turdidae"].CommonNames["English"])
}

func TestBuilderSubspeciesAndOrder(t *testing.T) {
	rows := append(robinRows(),
		ioc.MasterRow{Rank: ioc.Subspecies, Name: "nigrideus"},
		ioc.MasterRow{Rank: ioc.Subspecies, Name: "achrusterus"},
		ioc.MasterRow{Rank: ioc.Species, Name: "merula"},
		ioc.MasterRow{Rank: ioc.Genus, Name: "Catharus"},
		ioc.MasterRow{Rank: ioc.Species, Name: "Catharus ustulatus"},
		ioc.MasterRow{Rank: ioc.Infraclass, Name: "Palaeognathae"},
		ioc.MasterRow{Rank: ioc.Order, Name: "STRUTHIONIFORMES"},
	)
	tx := build(t, rows)

	require.Len(t, tx.Taxa, 2)
	assert.Equal(t, "Neoaves", tx.Taxa[0].Name)
	assert.Equal(t, "Palaeognathae", tx.Taxa[1].Name)

	ssp := tx.Index["Turdus migratorius achrusterus"]
	require.NotNil(t, ssp)
	assert.Equal(t, "achrusterus", ssp.Name)
	assert.Empty(t, ssp.BinomialName)

	robin := tx.Index["Turdus migratorius"]
	require.Len(t, robin.Subtaxa, 2)
	assert.Equal(t, "nigrideus", robin.Subtaxa[0].Name)
	assert.Equal(t, "achrusterus", robin.Subtaxa[1].Name)

	turdus := tx.Index["Turdus"]
	require.Len(t, turdus.Subtaxa, 2)
	assert.Equal(t, "Turdus merula", turdus.Subtaxa[1].BinomialName)

	// full binomial in the species column is accepted
	swainson := tx.Index["Catharus ustulatus"]
	require.NotNil(t, swainson)
	assert.Equal(t, "ustulatus", swainson.Name)

	family := tx.Index["Turdidae"]
	require.Len(t, family.Subtaxa, 2)
	assert.Equal(t, "Catharus", family.Subtaxa[1].Name)

	assert.Equal(t, 2, tx.Stats.InfraclassCount)
	assert.Equal(t, 2, tx.Stats.SubspeciesCount)
	assert.Equal(t, 3, tx.Stats.SpeciesCount)
	assert.Equal(t, tx.Len(), tx.Stats.Total())
	assert.Len(t, tx.Index, tx.Len())
}

func TestBuilderIndexSharesNodes(t *testing.T) {
	tx := build(t, robinRows())
	err := tx.Walk(func(tn *ioc.Taxon) error {
		assert.Same(t, tn, tx.Index[tn.Key()])
		return nil
	})
	require.NoError(t, err)
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []ioc.MasterRow
		code gn.ErrorCode
	}{
		{
			name: "order without infraclass",
			rows: []ioc.MasterRow{{Rank: ioc.Order, Name: "PASSERIFORMES"}},
			code: errcode.TaxonomyHierarchyError,
		},
		{
			name: "species directly under family",
			rows: []ioc.MasterRow{
				{Rank: ioc.Infraclass, Name: "Neoaves"},
				{Rank: ioc.Order, Name: "PASSERIFORMES"},
				{Rank: ioc.Family, Name: "Turdidae"},
				{Rank: ioc.Species, Name: "migratorius"},
			},
			code: errcode.TaxonomyHierarchyError,
		},
		{
			name: "unknown rank",
			rows: []ioc.MasterRow{{Rank: ioc.Rank("Tribe"), Name: "Turdini"}},
			code: errcode.TaxonomyHierarchyError,
		},
		{
			name: "empty name",
			rows: []ioc.MasterRow{{Rank: ioc.Infraclass, Name: "  "}},
			code: errcode.TaxonomyHierarchyError,
		},
		{
			name: "duplicate binomial",
			rows: append(robinRows(),
				ioc.MasterRow{Rank: ioc.Species, Name: "migratorius"},
			),
			code: errcode.TaxonomyDuplicateKeyError,
		},
		{
			name: "duplicate genus across families",
			rows: append(robinRows(),
				ioc.MasterRow{Rank: ioc.Family, Name: "Muscicapidae"},
				ioc.MasterRow{Rank: ioc.Genus, Name: "Turdus"},
			),
			code: errcode.TaxonomyDuplicateKeyError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ioc.NewBuilder("14.1")
			var err error
			for _, r := range tt.rows {
				if err = b.Add(r); err != nil {
					break
				}
			}
			require.Error(t, err)
			var gnErr *gn.Error
			require.True(t, errors.As(err, &gnErr))
			assert.Equal(t, tt.code, gnErr.Code)
		})
	}
}

func TestBuilderDuplicateKeepsFirst(t *testing.T) {
	b := ioc.NewBuilder("14.1")
	for _, r := range robinRows() {
		require.NoError(t, b.Add(r))
	}
	err := b.Add(ioc.MasterRow{Rank: ioc.Species, Name: "migratorius"})
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Contains(t, gnErr.Err.Error(), "Turdus migratorius")
	assert.Equal(t, "Turdus migratorius", gnErr.Vars[0])

	tx := b.Taxonomy()
	assert.Len(t, tx.Index["Turdus"].Subtaxa, 1)
	assert.Equal(t, 1, tx.Stats.SpeciesCount)
}

func TestBuilderContinuesAfterRejectedRow(t *testing.T) {
	b := ioc.NewBuilder("14.1")
	for _, r := range robinRows() {
		require.NoError(t, b.Add(r))
	}

	err := b.Add(ioc.MasterRow{Rank: ioc.Genus, Name: "Turdus"})
	require.Error(t, err)

	err = b.Add(ioc.MasterRow{Rank: ioc.Subspecies, Name: "achrusterus"})
	require.NoError(t, err)

	tx := b.Taxonomy()
	ssp := tx.Index["Turdus migratorius achrusterus"]
	require.NotNil(t, ssp)
	assert.Same(t, ssp, tx.Index["Turdus migratorius"].Subtaxa[0])
	assert.Equal(t, 1, tx.Stats.SubspeciesCount)
}
