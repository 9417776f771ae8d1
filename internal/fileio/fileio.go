// Package fileio parses tabular dataset uploads (CSV, XLSX) into rows of
// header/value maps, independent of catalog semantics.
package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/specdex/specdex/internal/domain"
)

// ReadTable picks a parser by file extension and returns rows as
// map[header]value. headerRow is 1-based.
func ReadTable(r io.Reader, filename string, headerRow int) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".csv":
		return readCSV(r, headerRow)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrDatasetFormat, filename)
	}
}

// pickHeader takes the header row and substitutes "Column N" for blanks.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToMaps converts row slices into header-keyed maps, skipping rows that
// are entirely blank.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	var out []map[string]string
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		for c := 0; c < len(headers); c++ {
			var v string
			if c < len(rec) {
				v = rec[c]
			}
			m[headers[c]] = v
		}
		empty := true
		for _, v := range m {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}
