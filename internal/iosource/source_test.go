package iosource_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnioc/internal/iosource"
	"github.com/gnames/gnioc/internal/iotesting"
	"github.com/gnames/gnioc/pkg/errcode"
	"github.com/gnames/gnioc/pkg/ioc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr), "expected *gn.Error, got %v", err)
	return gnErr.Code
}

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	files := iotesting.WriteIOCFiles(t, dir)

	tests := []struct {
		msg     string
		path    string
		kind    iosource.Kind
		version string
	}{
		{"master", files.Master, iosource.MasterKind, "14.1"},
		{"other lists", files.OtherLists, iosource.OtherListsKind, "14.1"},
		{"multilingual", files.Multilingual, iosource.MultilingualKind, "14.1"},
		{"complementary", files.Complementary, iosource.ComplementaryKind, ""},
	}

	for _, v := range tests {
		src, err := iosource.Classify(v.path)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.path, src.Path(), v.msg)
		assert.Equal(t, v.kind, src.Kind(), v.msg)
		assert.Equal(t, v.version, src.Version(), v.msg)
	}
}

func TestClassifyErrors(t *testing.T) {
	dir := t.TempDir()

	unknown := iotesting.WriteCSV(t, dir, "unknown.csv", [][]string{
		{"Name", "Value"},
		{"Turdus migratorius", "1"},
	})

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("just text"), 0644))

	broken := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(broken, []byte("not a zip"), 0644))

	// header is below the rows that are searched
	deep := make([][]string, 0, 12)
	for range 10 {
		deep = append(deep, []string{"preamble"})
	}
	deep = append(deep, []string{"Scientific Name", "Extinct", "Code"})
	deepHeader := iotesting.WriteCSV(t, dir, "deep.csv", deep)

	tests := []struct {
		msg  string
		path string
		code gn.ErrorCode
	}{
		{"no signature", unknown, errcode.SourceUnrecognizedFormatError},
		{"header too deep", deepHeader, errcode.SourceUnrecognizedFormatError},
		{"unsupported extension", txt, errcode.SourceNotTabularError},
		{"broken workbook", broken, errcode.SourceNotTabularError},
	}

	for _, v := range tests {
		_, err := iosource.Classify(v.path)
		require.Error(t, err, v.msg)
		assert.Equal(t, v.code, errCode(t, err), v.msg)
	}
}

func TestUnrecognizedErrorNamesPath(t *testing.T) {
	path := iotesting.WriteCSV(t, t.TempDir(), "unknown.csv", [][]string{
		{"a", "b"},
	})
	_, err := iosource.Classify(path)
	require.Error(t, err)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, path, gnErr.Vars[0])
	assert.Contains(t, gnErr.Err.Error(), path)
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	files := iotesting.WriteIOCFiles(t, dir)

	err := iosource.CheckFiles([]string{files.Master, files.Complementary})
	assert.NoError(t, err)

	missing := filepath.Join(dir, "missing.xlsx")
	err = iosource.CheckFiles([]string{files.Master, missing})
	require.Error(t, err)
	assert.Equal(t, errcode.SourceFileNotFoundError, errCode(t, err))

	err = iosource.CheckFiles([]string{dir})
	require.Error(t, err)
	assert.Equal(t, errcode.SourceFileNotFoundError, errCode(t, err))
}

func TestSorted(t *testing.T) {
	dir := t.TempDir()
	files := iotesting.WriteIOCFiles(t, dir)
	compl2 := iotesting.WriteCSV(t, dir, "compl2.csv",
		iotesting.ComplementaryRows())

	srcs, err := iosource.Sorted([]string{
		files.Complementary,
		files.Multilingual,
		compl2,
		files.Master,
		files.OtherLists,
	})
	require.NoError(t, err)
	require.Len(t, srcs, 5)

	var kinds []iosource.Kind
	for _, s := range srcs {
		kinds = append(kinds, s.Kind())
	}
	assert.Equal(t, []iosource.Kind{
		iosource.MasterKind,
		iosource.OtherListsKind,
		iosource.MultilingualKind,
		iosource.ComplementaryKind,
		iosource.ComplementaryKind,
	}, kinds)
	// same kind keeps input order
	assert.Equal(t, files.Complementary, srcs[3].Path())
	assert.Equal(t, compl2, srcs[4].Path())
}

func TestSortedFailsOnUnknown(t *testing.T) {
	dir := t.TempDir()
	files := iotesting.WriteIOCFiles(t, dir)
	unknown := iotesting.WriteCSV(t, dir, "unknown.csv", [][]string{{"x"}})

	_, err := iosource.Sorted([]string{files.Master, unknown})
	require.Error(t, err)
	assert.Equal(t, errcode.SourceUnrecognizedFormatError, errCode(t, err))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Master", iosource.MasterKind.String())
	assert.Equal(t, "Other Lists", iosource.OtherListsKind.String())
	assert.Equal(t, "Multilingual", iosource.MultilingualKind.String())
	assert.Equal(t, "Complementary", iosource.ComplementaryKind.String())
	assert.Equal(t, "Unknown", iosource.Kind(42).String())
}

func TestVersionDetection(t *testing.T) {
	dir := t.TempDir()
	compl := iotesting.ComplementaryRows()

	tests := []struct {
		msg     string
		path    string
		version string
	}{
		{
			msg: "preamble wins over name column",
			path: iotesting.WriteCSV(t, dir, "a.csv", [][]string{
				{"Version 13.2 released"},
				{"IOC_14.1", "English", "French"},
			}),
			version: "13.2",
		},
		{
			msg: "name column header",
			path: iotesting.WriteCSV(t, dir, "b.csv", [][]string{
				{"IOC_14.2", "English", "French"},
			}),
			version: "14.2",
		},
		{
			msg:     "file name",
			path:    iotesting.WriteCSV(t, dir, "compl_v15.1.csv", compl),
			version: "15.1",
		},
		{
			msg: "sheet name",
			path: iotesting.WriteXLSX(t, dir, "master.xlsx", "Master v12.2",
				iotesting.MasterRows()[2:]),
			version: "12.2",
		},
		{
			msg:     "nothing found",
			path:    iotesting.WriteCSV(t, dir, "compl.csv", compl),
			version: "",
		},
	}

	for _, v := range tests {
		src, err := iosource.Classify(v.path)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.version, src.Version(), v.msg)
	}
}

func TestReadMaster(t *testing.T) {
	files := iotesting.WriteIOCFiles(t, t.TempDir())
	src, err := iosource.Classify(files.Master)
	require.NoError(t, err)
	require.NoError(t, src.Read())

	tx := src.Taxonomy()
	require.NotNil(t, tx)
	assert.Nil(t, src.Languages())
	assert.Equal(t, "14.1", tx.Version)
	assert.Equal(t, 7, tx.Len())
	require.Len(t, tx.Taxa, 1)
	assert.Equal(t, "NEOAVES", tx.Taxa[0].Name)

	robin := tx.Index["Turdus migratorius"]
	require.NotNil(t, robin)
	assert.Equal(t, ioc.Species, robin.Rank)
	assert.Equal(t, "Linnaeus, 1766", robin.Authority)
	assert.Equal(t, "American Robin", robin.CommonNames["English"])
	assert.Equal(t, "NA", robin.BreedingRange)
	assert.Equal(t, "MA", robin.NonbreedingRange)
	require.Len(t, robin.Subtaxa, 1)
	assert.Equal(t,
		"Turdus migratorius achrusterus", robin.Subtaxa[0].TrinomialName)

	family := tx.Index["Turdidae"]
	require.NotNil(t, family)
	assert.Equal(t, "Thrushes", family.CommonNames["English"])

	assert.Equal(t, "Extinct", tx.Index["Turdus ravidus"].Comment)

	stats := tx.Stats
	assert.Equal(t, 1, stats.InfraclassCount)
	assert.Equal(t, 1, stats.OrderCount)
	assert.Equal(t, 1, stats.FamilyCount)
	assert.Equal(t, 1, stats.GenusCount)
	assert.Equal(t, 2, stats.SpeciesCount)
	assert.Equal(t, 1, stats.SubspeciesCount)

	// second Read is a no-op
	require.NoError(t, src.Read())
	assert.Same(t, tx, src.Taxonomy())
}

func TestReadMasterFromCSV(t *testing.T) {
	path := iotesting.WriteCSV(t, t.TempDir(), "master.csv",
		iotesting.MasterRows())
	src, err := iosource.Classify(path)
	require.NoError(t, err)
	require.NoError(t, src.Read())
	assert.Equal(t, 7, src.Taxonomy().Len())
}

func TestReadMasterHierarchyError(t *testing.T) {
	rows := [][]string{
		{"Infraclass", "Order", "Family", "Genus", "Species"},
		{"NEOAVES"},
		{"", "PASSERIFORMES"},
		{"", "", "Turdidae"},
		{"", "", "", "", "migratorius"},
	}
	path := iotesting.WriteCSV(t, t.TempDir(), "master.csv", rows)
	src, err := iosource.Classify(path)
	require.NoError(t, err)
	assert.Equal(t, iosource.MasterKind, src.Kind())

	err = src.Read()
	require.Error(t, err)
	assert.Equal(t, errcode.TaxonomyHierarchyError, errCode(t, err))
}

func TestReadOtherLists(t *testing.T) {
	files := iotesting.WriteIOCFiles(t, t.TempDir())
	src, err := iosource.Classify(files.OtherLists)
	require.NoError(t, err)
	require.NoError(t, src.Read())

	res := src.OtherLists()
	require.Len(t, res, 2)
	entry, ok := res["Turdus migratorius"]
	require.True(t, ok)
	assert.Equal(t, "Turdus migratorius", entry.FollowingEntries)
	assert.Equal(t,
		map[string]string{"Clements 2023": "Turdus migratorius"}, entry.Lists)
}

func TestReadLanguages(t *testing.T) {
	files := iotesting.WriteIOCFiles(t, t.TempDir())
	src, err := iosource.Classify(files.Multilingual)
	require.NoError(t, err)
	require.NoError(t, src.Read())

	res := src.Languages()
	require.Len(t, res, 1)
	assert.Equal(t, map[string]string{
		"English": "Robin",
		"French":  "Merle d'Amérique",
		"German":  "Wanderdrossel",
	}, res["Turdus migratorius"])
}

func TestReadComplementary(t *testing.T) {
	files := iotesting.WriteIOCFiles(t, t.TempDir())
	src, err := iosource.Classify(files.Complementary)
	require.NoError(t, err)
	require.NoError(t, src.Read())

	res := src.Complementary()
	require.Len(t, res, 4)
	assert.Equal(t, ioc.ComplementaryEntry{Code: "TUR"}, res["Turdus"])
	assert.Equal(t, ioc.ComplementaryEntry{Code: "AMRO"},
		res["Turdus migratorius"])
	assert.Equal(t, ioc.ComplementaryEntry{Extinct: true},
		res["Turdus ravidus"])
	assert.Equal(t, ioc.ComplementaryEntry{Code: "AMRO-A"},
		res["Turdus migratorius achrusterus"])
}

func TestExtinctValues(t *testing.T) {
	tests := []struct {
		val     string
		extinct bool
	}{
		{"†", true},
		{"x", true},
		{"Yes", true},
		{"TRUE", true},
		{"1", true},
		{"extinct", true},
		{"", false},
		{"no", false},
		{"0", false},
	}

	rows := [][]string{{"Scientific Name", "Extinct", "Code"}}
	for i, v := range tests {
		rows = append(rows, []string{"Genus" + string(rune('a'+i)), v.val, ""})
	}
	path := iotesting.WriteCSV(t, t.TempDir(), "compl.csv", rows)
	src, err := iosource.Classify(path)
	require.NoError(t, err)
	require.NoError(t, src.Read())

	res := src.Complementary()
	for i, v := range tests {
		key := "Genus" + string(rune('a'+i))
		assert.Equal(t, v.extinct, res[key].Extinct, v.val)
	}
}
