package core

// csvio.go reads and writes price list files.
//
// Field text is preserved byte for byte: no trimming, no BOM stripping, no
// numeric coercion. The whole file is held in memory; price lists are a few
// hundred rows.

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Read parses a price list from r. The first record is the header.
//
// Blank lines are kept as empty rows so the list stays a line-for-line
// image of the file. They have no columns and fail when sorted.
func Read(r io.Reader) (*PriceList, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading price list: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: price list is not valid UTF-8", ErrEncoding)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1 // column count is checked per row when sorting
	cr.LazyQuotes = true

	var (
		records []Row
		lines   []int
		lastEnd int // last line consumed by the previous record
	)
	addBlank := func(upTo int) {
		for l := lastEnd + 1; l < upTo; l++ {
			records = append(records, Row{})
			lines = append(lines, l)
		}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}

		start, _ := cr.FieldPos(0)
		addBlank(start)
		records = append(records, rec)
		lines = append(lines, start)

		// Quoted fields may span lines; the record ends where its last field does.
		last := len(rec) - 1
		end, _ := cr.FieldPos(last)
		lastEnd = end + strings.Count(rec[last], "\n")
	}
	addBlank(lineCount(data) + 1)

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header line", ErrEmptyFile)
	}

	return &PriceList{
		Header: records[0],
		Rows:   records[1:],
		Lines:  lines[1:],
		CRLF:   bytes.Contains(data, []byte("\r\n")),
	}, nil
}

// lineCount returns the number of lines in data. A final line without a
// terminator still counts.
func lineCount(data []byte) int {
	n := bytes.Count(data, []byte("\n"))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

func wrapCSVError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: line %d: %v", ErrInvalidCSV, pe.Line, pe.Err)
	}
	return fmt.Errorf("%w: %v", ErrInvalidCSV, err)
}

// LoadFile opens and parses the price list at path.
func LoadFile(path string) (*PriceList, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrMissingInput, err)
	}
	defer f.Close()

	list, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return list, nil
}

// Write writes the header followed by every row of p to w.
//
// Fields are quoted only when they contain a comma, a quote or a line
// break. csv.Writer also quotes fields with leading spaces, which would
// change text such as a header cell written as " 名前".
func Write(w io.Writer, p *PriceList) error {
	bw := bufio.NewWriter(w)
	eol := "\n"
	if p.CRLF {
		eol = "\r\n"
	}

	writeRecord(bw, p.Header, eol)
	for _, r := range p.Rows {
		writeRecord(bw, r, eol)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing price list: %w", err)
	}
	return nil
}

func writeRecord(w *bufio.Writer, r Row, eol string) {
	// A lone empty field must be quoted or it reads back as a blank line.
	if len(r) == 1 && r[0] == "" {
		w.WriteString(`""`)
		w.WriteString(eol)
		return
	}
	for i, field := range r {
		if i > 0 {
			w.WriteByte(',')
		}
		if !needsQuotes(field) {
			w.WriteString(field)
			continue
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(field, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteString(eol)
}

func needsQuotes(field string) bool {
	return strings.ContainsAny(field, ",\"\r\n")
}

// SaveFile writes p to path. The data goes to a temporary file in the
// same directory first and is renamed into place once fully written, so
// path never holds a partial list.
func SaveFile(path string, p *PriceList) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, p); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting output permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving output into place: %w", err)
	}
	return nil
}
