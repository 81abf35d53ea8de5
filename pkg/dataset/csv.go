package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	perrors "github.com/matzehuels/scatterplot/pkg/errors"
)

// utf8BOM is stripped from the first header cell; spreadsheet exports
// commonly prepend it.
const utf8BOM = "\ufeff"

// Row is one CSV record keyed by header name.
type Row map[string]string

// Table is the raw content of a CSV file: its header and its rows in file order.
type Table struct {
	Header []string
	Rows   []Row
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Header {
		if h == name {
			return true
		}
	}
	return false
}

// ReadCSV decodes a header-first CSV document into a Table.
//
// Rows shorter than the header are padded with empty strings; extra trailing
// cells are ignored. An empty document yields an empty Table and no error.
// ReadCSV does not close r.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read csv header")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read csv row %d", len(t.Rows)+1)
		}
		row := make(Row, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadCSVBytes is a convenience wrapper around [ReadCSV] for in-memory data.
func ReadCSVBytes(data []byte) (*Table, error) {
	return ReadCSV(bytes.NewReader(data))
}

// ImportCSV reads the CSV file at path.
func ImportCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
