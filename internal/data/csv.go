package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// table is one parsed CSV file: rows addressed by header name.
type table struct {
	path string
	cols map[string]int
	rows [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[name] = i
	}
	return &table{path: path, cols: cols, rows: records[1:]}, nil
}

// require fails early on a column mismatch so a schema drift surfaces as a
// load error, not a bad join.
func (t *table) require(names ...string) error {
	for _, n := range names {
		if _, ok := t.cols[n]; !ok {
			return fmt.Errorf("%s: missing column %q", t.path, n)
		}
	}
	return nil
}

func (t *table) str(row []string, col string) string {
	return row[t.cols[col]]
}

func (t *table) float(row []string, col string) (float64, error) {
	raw := t.str(row, col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: column %q: bad number %q", t.path, col, raw)
	}
	return v, nil
}
