// Package csvutil parses provider CSV feeds into header-keyed records. It
// tolerates the usual upstream quirks: UTF-8 BOM, quoted delimiters, doubled
// quotes, logical rows spanning physical lines, and mixed line endings.
package csvutil

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var (
	ErrEmptyInput = errors.New("csv: empty input")
	ErrNoHeader   = errors.New("csv: missing header row")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Record maps column name (from the header row) to the field value.
// Duplicate header names keep the last column's value.
type Record map[string]string

// Parse decodes raw CSV bytes into records keyed by the header row. Rows
// shorter than the header are padded with empty strings; fully blank rows are
// skipped. Structural failures (empty input, no header) are errors.
func Parse(data []byte) ([]Record, error) {
	header, rows, err := parseRaw(data)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseFunc decodes CSV bytes and maps each record through mapFn, silently
// dropping records for which mapFn reports false. Structural failures still
// propagate.
func ParseFunc[T any](data []byte, mapFn func(Record) (T, bool)) ([]T, error) {
	records, err := Parse(data)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if v, ok := mapFn(rec); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func parseRaw(data []byte) (header []string, rows [][]string, err error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = normalizeLineEndings(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, ErrEmptyInput
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // rows are padded against the header instead
	r.LazyQuotes = true    // tolerate sloppy quoting in upstream rows

	header, err = r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrNoHeader
		}
		return nil, nil, fmt.Errorf("csv: read header: %w", err)
	}
	if blankRow(header) {
		return nil, nil, ErrNoHeader
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Row-level decode failure: drop the row, keep the stream.
			continue
		}
		if blankRow(row) {
			continue
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// normalizeLineEndings rewrites CRLF and bare CR to LF. encoding/csv copes
// with CRLF on its own, but some legacy feeds still terminate rows with a
// lone CR.
func normalizeLineEndings(data []byte) []byte {
	if !bytes.ContainsRune(data, '\r') {
		return data
	}
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
}

func blankRow(row []string) bool {
	for _, f := range row {
		if f != "" {
			return false
		}
	}
	return true
}
