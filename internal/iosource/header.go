package iosource

import (
	"regexp"
	"slices"
	"strings"
)

// headerScanRows is how many leading rows are searched for a header.
const headerScanRows = 10

var (
	iocColumnRe = regexp.MustCompile(`^ioc[_ ]?v?\d+(\.\d+)*$`)
	versionRe   = regexp.MustCompile(`[vV]?\s?(\d+(?:\.\d+)+)`)
)

// metaColumns are never treated as list or language names.
var metaColumns = []string{
	"seq", "seq.", "no", "no.", "#", "rank", "infraclass", "order", "family",
	"authority", "scientific name",
}

var extinctValues = []string{
	"†", "x", "yes", "y", "true", "1", "extinct",
}

// header is a candidate header row.
type header struct {
	// names are the original cell values.
	names []string
	// cols are the lower-cased cell values.
	cols []string
}

func newHeader(row []string) header {
	res := header{names: row, cols: make([]string, len(row))}
	for i := range row {
		res.cols[i] = strings.ToLower(strings.TrimSpace(row[i]))
	}
	return res
}

// index returns the position of the first column equal to any of the
// given lower-case names, trying the names in order.
func (h header) index(names ...string) int {
	for _, name := range names {
		if i := slices.Index(h.cols, name); i >= 0 {
			return i
		}
	}
	return -1
}

func (h header) prefixIndex(prefix string) int {
	for i, c := range h.cols {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

// nameIndex returns the position of the scientific name column.
func (h header) nameIndex() int {
	if i := h.index("scientific name"); i >= 0 {
		return i
	}
	for i, c := range h.cols {
		if iocColumnRe.MatchString(c) {
			return i
		}
	}
	return -1
}

func (h header) isMeta(i int) bool {
	return slices.Contains(metaColumns, h.cols[i])
}

// valueColumns returns positions of non-empty columns that are neither
// meta columns nor one of the skipped positions.
func (h header) valueColumns(skip ...int) []int {
	var res []int
	for i, c := range h.cols {
		if c == "" || h.isMeta(i) || slices.Contains(skip, i) {
			continue
		}
		res = append(res, i)
	}
	return res
}

func (h header) isMaster() bool {
	return h.index("infraclass") >= 0 &&
		h.index("order") >= 0 &&
		h.index("genus") >= 0 &&
		h.index("species (scientific)", "species") >= 0
}

func (h header) isComplementary() bool {
	return h.index("extinct") >= 0 &&
		h.index("code") >= 0 &&
		h.nameIndex() >= 0
}

func (h header) isOtherLists() bool {
	return h.prefixIndex("following") >= 0 && h.nameIndex() >= 0
}

func (h header) isMultilingual() bool {
	nameIdx := h.nameIndex()
	if nameIdx < 0 || h.index("english") < 0 {
		return false
	}
	return len(h.valueColumns(nameIdx)) >= 2
}

// kind checks the header against known layouts. Master is checked first
// because its header is the most specific.
func (h header) kind() Kind {
	switch {
	case h.isMaster():
		return MasterKind
	case h.isComplementary():
		return ComplementaryKind
	case h.isOtherLists():
		return OtherListsKind
	case h.isMultilingual():
		return MultilingualKind
	default:
		return UnknownKind
	}
}

// findVersion returns the first version number found in the given
// strings, without a leading 'v'.
func findVersion(ss ...string) string {
	for _, s := range ss {
		if m := versionRe.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	return ""
}

func isExtinct(s string) bool {
	return slices.Contains(extinctValues, strings.ToLower(strings.TrimSpace(s)))
}
