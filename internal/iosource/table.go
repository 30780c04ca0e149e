package iosource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/xuri/excelize/v2"
)

// table is the content of one sheet of a source file.
type table struct {
	sheet string
	rows  [][]string
}

// scanTables reads at most limit rows of every sheet of the file.
// Delimited files have exactly one sheet with an empty name.
func scanTables(path string, limit int) ([]table, error) {
	if isExcel(path) {
		return readExcel(path, "", limit)
	}
	tbl, err := readDelimited(path, limit)
	if err != nil {
		return nil, err
	}
	return []table{tbl}, nil
}

// readTable reads all rows of the given sheet. The sheet is ignored for
// delimited files.
func readTable(path, sheet string) (table, error) {
	if !isExcel(path) {
		return readDelimited(path, 0)
	}
	tbls, err := readExcel(path, sheet, 0)
	if err != nil {
		return table{}, err
	}
	if len(tbls) == 0 {
		return table{}, ReadSourceError(path,
			fmt.Errorf("sheet '%s' not found", sheet))
	}
	return tbls[0], nil
}

func isExcel(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}

func delimiter(path string) (rune, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ',', true
	case ".tsv", ".tab":
		return '\t', true
	default:
		return 0, false
	}
}

// readExcel reads sheets of an Excel workbook. If onlySheet is not empty,
// only that sheet is read. A limit of 0 reads all rows.
func readExcel(path, onlySheet string, limit int) ([]table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NotTabularError(path, err)
	}
	defer f.Close()

	var res []table
	for _, sheet := range f.GetSheetList() {
		if onlySheet != "" && sheet != onlySheet {
			continue
		}
		rows, err := readSheet(f, sheet, limit)
		if err != nil {
			return nil, ReadSourceError(path, err)
		}
		res = append(res, table{sheet: sheet, rows: rows})
	}
	if onlySheet == "" && len(res) == 0 {
		return nil, NotTabularError(path, errors.New("workbook has no sheets"))
	}
	return res, nil
}

func readSheet(f *excelize.File, sheet string, limit int) ([][]string, error) {
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res [][]string
	for rows.Next() {
		if limit > 0 && len(res) >= limit {
			break
		}
		cols, err := rows.Columns()
		if err != nil {
			return nil, err
		}
		res = append(res, cleanRow(cols))
	}
	if err = rows.Error(); err != nil {
		return nil, err
	}
	return res, nil
}

// readDelimited reads a CSV or TSV file. A limit of 0 reads all rows.
func readDelimited(path string, limit int) (table, error) {
	comma, ok := delimiter(path)
	if !ok {
		err := fmt.Errorf("unsupported file extension '%s'", filepath.Ext(path))
		return table{}, NotTabularError(path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return table{}, ReadSourceError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var res table
	for limit == 0 || len(res.rows) < limit {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table{}, NotTabularError(path, err)
		}
		if len(res.rows) == 0 && len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
		}
		res.rows = append(res.rows, cleanRow(rec))
	}
	return res, nil
}

func cleanRow(row []string) []string {
	res := make([]string, len(row))
	for i := range row {
		res[i] = cleanCell(row[i])
	}
	return res
}

func cleanCell(s string) string {
	return strings.TrimSpace(gnlib.FixUtf8(s))
}

// cell returns the cell of the row at idx, or an empty string when the
// column is absent.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
