// Package iosource reads IOC World Bird List files (Excel workbooks or
// delimited text), detects which of the known IOC layouts each file
// follows, and parses them into a taxonomy or into key-indexed auxiliary
// data.
package iosource

import (
	"cmp"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gnames/gnioc/pkg/ioc"
)

// Kind is a layout of an IOC file. The order of the constants is the
// order in which files are processed.
type Kind int

const (
	UnknownKind Kind = iota
	MasterKind
	OtherListsKind
	MultilingualKind
	ComplementaryKind
)

var kindNames = map[Kind]string{
	UnknownKind:       "Unknown",
	MasterKind:        "Master",
	OtherListsKind:    "Other Lists",
	MultilingualKind:  "Multilingual",
	ComplementaryKind: "Complementary",
}

func (k Kind) String() string {
	if res, ok := kindNames[k]; ok {
		return res
	}
	return kindNames[UnknownKind]
}

// Source is a classified IOC file. Its content is loaded by Read.
type Source struct {
	path      string
	kind      Kind
	sheet     string
	headerRow int
	version   string
	isRead    bool

	taxonomy      *ioc.Taxonomy
	otherLists    map[string]ioc.OtherListsEntry
	languages     map[string]map[string]string
	complementary map[string]ioc.ComplementaryEntry
}

// CheckFiles makes sure every path points to an existing regular file.
func CheckFiles(paths []string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return FileNotFoundError(path, err)
		}
		if !info.Mode().IsRegular() {
			return FileNotFoundError(path, nil)
		}
	}
	return nil
}

// Classify opens the file, finds its header row and decides its layout.
// Only the first rows of the file are read.
func Classify(path string) (*Source, error) {
	tbls, err := scanTables(path, headerScanRows)
	if err != nil {
		return nil, err
	}

	for _, tbl := range tbls {
		for i, row := range tbl.rows {
			h := newHeader(row)
			kind := h.kind()
			if kind == UnknownKind {
				continue
			}
			res := &Source{
				path:      path,
				kind:      kind,
				sheet:     tbl.sheet,
				headerRow: i,
			}
			res.version = detectVersion(path, tbl, i, h)
			slog.Debug("Classified file",
				"path", path, "kind", kind.String(),
				"sheet", tbl.sheet, "header_row", i, "version", res.version,
			)
			return res, nil
		}
	}
	return nil, UnrecognizedFormatError(path)
}

// Sorted classifies all paths and returns them in processing order:
// Master, Other Lists, Multilingual, Complementary. Files of the same
// kind keep their relative order.
func Sorted(paths []string) ([]*Source, error) {
	res := make([]*Source, 0, len(paths))
	for _, path := range paths {
		src, err := Classify(path)
		if err != nil {
			return nil, err
		}
		res = append(res, src)
	}
	slices.SortStableFunc(res, func(a, b *Source) int {
		return cmp.Compare(a.kind, b.kind)
	})
	return res, nil
}

// Path returns the path of the file.
func (s *Source) Path() string {
	return s.path
}

// Kind returns the detected layout of the file.
func (s *Source) Kind() Kind {
	return s.kind
}

// Version returns the IOC version found in the file, or an empty string.
func (s *Source) Version() string {
	return s.version
}

// Read parses the whole file according to its kind. Subsequent calls do
// nothing.
func (s *Source) Read() error {
	if s.isRead {
		return nil
	}

	tbl, err := readTable(s.path, s.sheet)
	if err != nil {
		return err
	}
	if s.headerRow >= len(tbl.rows) {
		return UnrecognizedFormatError(s.path)
	}
	h := newHeader(tbl.rows[s.headerRow])
	rows := tbl.rows[s.headerRow+1:]

	switch s.kind {
	case MasterKind:
		err = s.readMaster(h, rows)
	case OtherListsKind:
		err = s.readOtherLists(h, rows)
	case MultilingualKind:
		err = s.readLanguages(h, rows)
	case ComplementaryKind:
		err = s.readComplementary(h, rows)
	default:
		err = UnrecognizedFormatError(s.path)
	}
	if err != nil {
		return err
	}
	s.isRead = true
	return nil
}

// Taxonomy returns the tree parsed from a Master file, or nil for other
// kinds.
func (s *Source) Taxonomy() *ioc.Taxonomy {
	return s.taxonomy
}

// OtherLists returns comparison data keyed by species name, or nil if
// the file is not an Other Lists file.
func (s *Source) OtherLists() map[string]ioc.OtherListsEntry {
	return s.otherLists
}

// Languages returns common names keyed by species name and then by
// language, or nil if the file is not a Multilingual file.
func (s *Source) Languages() map[string]map[string]string {
	return s.languages
}

// Complementary returns extinction flags and codes keyed by name, or nil
// if the file is not a Complementary file.
func (s *Source) Complementary() map[string]ioc.ComplementaryEntry {
	return s.complementary
}

// detectVersion looks for a version number in the preamble, the name
// column header, the sheet name and the file name, in this order.
func detectVersion(path string, tbl table, headerRow int, h header) string {
	var candidates []string
	for _, row := range tbl.rows[:headerRow] {
		candidates = append(candidates, row...)
	}
	if i := h.nameIndex(); i >= 0 {
		candidates = append(candidates, h.names[i])
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	candidates = append(candidates, tbl.sheet, base)
	return findVersion(candidates...)
}
