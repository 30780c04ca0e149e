// Package iotesting provides shared fixtures for tests: temporary
// configurations and small IOC files in the supported table formats.
package iotesting

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnioc/pkg/config"
	"github.com/xuri/excelize/v2"
)

// GetTestConfig returns a configuration whose home and data directories
// are inside a temporary directory, so tests never touch real data.
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	tmp := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(tmp),
		config.OptDataDir(filepath.Join(tmp, "gendata")),
		config.OptLogDestination("stderr"),
		config.OptJobsNumber(2),
	})
	return cfg
}

// MasterRows is a small IOC Master list with a preamble, one infraclass,
// one order, one family, two species and one subspecies.
func MasterRows() [][]string {
	return [][]string{
		{"IOC World Bird List v14.1"},
		{""},
		{
			"Infraclass", "Order", "Family (Scientific)", "Family (English)",
			"Genus", "Species (Scientific)", "Subspecies", "Authority",
			"Species (English)", "Breeding Range", "Nonbreeding Range", "Code",
			"Comment",
		},
		{"NEOAVES"},
		{"", "PASSERIFORMES"},
		{"", "", "Turdidae", "Thrushes"},
		{"", "", "", "", "Turdus"},
		{
			"", "", "", "", "", "migratorius", "", "Linnaeus, 1766",
			"American Robin", "NA", "MA", "", "",
		},
		{
			"", "", "", "", "", "", "achrusterus", "(Batchelder, 1900)", "",
			"se USA",
		},
		{
			"", "", "", "", "", "ravidus", "", "(Cory, 1886)",
			"Grand Cayman Thrush", "Cayman Is.", "", "", "Extinct",
		},
	}
}

// OtherListsRows compares the Master list with other world lists.
func OtherListsRows() [][]string {
	return [][]string{
		{"Seq", "IOC_14.1", "Following entries", "Clements 2023", "HBW v8"},
		{
			"1", "Turdus migratorius Linnaeus, 1766", "Turdus migratorius",
			"Turdus migratorius", "",
		},
		{"2", "Turdus unknownus", "", "Turdus unknownus", ""},
	}
}

// MultilingualRows holds common names in several languages.
func MultilingualRows() [][]string {
	return [][]string{
		{"Seq.", "Order", "Family", "IOC_14.1", "English", "French", "German"},
		{
			"1", "PASSERIFORMES", "Turdidae", "Turdus  migratorius",
			"Robin", "Merle d'Amérique", "Wanderdrossel",
		},
		{
			"2", "PASSERIFORMES", "Turdidae", "Turdus ravidus",
			"", "", "",
		},
	}
}

// ComplementaryRows holds extinction flags and codes.
func ComplementaryRows() [][]string {
	return [][]string{
		{"Scientific Name", "Extinct", "Code"},
		{"Turdus", "", "TUR"},
		{"Turdus migratorius", "", "AMRO"},
		{"Turdus ravidus", "†", ""},
		{"Turdus migratorius achrusterus", "", "AMRO-A"},
	}
}

// IOCFiles are paths of fixture files of every kind.
type IOCFiles struct {
	Master        string
	OtherLists    string
	Multilingual  string
	Complementary string
}

// WriteIOCFiles writes one fixture file of every kind to dir. The Master
// list is an Excel workbook, the rest are CSV or TSV files.
func WriteIOCFiles(t *testing.T, dir string) IOCFiles {
	t.Helper()

	return IOCFiles{
		Master:        WriteXLSX(t, dir, "master_ioc_list.xlsx", "", MasterRows()),
		OtherLists:    WriteCSV(t, dir, "ioc_vs_other_lists.csv", OtherListsRows()),
		Multilingual:  WriteTSV(t, dir, "multiling.tsv", MultilingualRows()),
		Complementary: WriteCSV(t, dir, "complementary.csv", ComplementaryRows()),
	}
}

// WriteCSV writes rows as a comma-separated file and returns its path.
func WriteCSV(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()
	return writeDelimited(t, dir, name, ',', rows)
}

// WriteTSV writes rows as a tab-separated file and returns its path.
func WriteTSV(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()
	return writeDelimited(t, dir, name, '\t', rows)
}

func writeDelimited(
	t *testing.T,
	dir, name string,
	comma rune,
	rows [][]string,
) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = comma
	if err = w.WriteAll(rows); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteXLSX writes rows into a workbook and returns its path. When sheet
// is not empty, rows go to a new sheet of that name placed after an
// unrelated first sheet.
func WriteXLSX(t *testing.T, dir, name, sheet string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	target := "Sheet1"
	if sheet != "" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("Failed to create sheet %s: %v", sheet, err)
		}
		notes := []any{"Notes about this workbook"}
		if err := f.SetSheetRow("Sheet1", "A1", &notes); err != nil {
			t.Fatalf("Failed to write notes: %v", err)
		}
		target = sheet
	}

	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("Failed to compute cell name: %v", err)
		}
		vals := make([]any, len(row))
		for j := range row {
			vals[j] = row[j]
		}
		if err = f.SetSheetRow(target, cellName, &vals); err != nil {
			t.Fatalf("Failed to write row %d: %v", i, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save %s: %v", path, err)
	}
	return path
}
