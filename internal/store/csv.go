package store

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	appLog "mktcal/internal/log"
	"mktcal/internal/model"
)

const utf8BOM = "\uFEFF"

// DefaultCategories is used whenever the categories file is unusable.
var DefaultCategories = []string{"Expected Marketing Need", "Member Engage", "Other"}

// CSVStore reads and writes the events and categories files.
type CSVStore struct {
	EventsPath     string
	CategoriesPath string
}

func NewCSVStore(eventsPath, categoriesPath string) *CSVStore {
	return &CSVStore{EventsPath: eventsPath, CategoriesPath: categoriesPath}
}

// LoadEvents reads the events file into a raw table. Only Cells are filled;
// derived fields are left to the normalizer.
func (s *CSVStore) LoadEvents() (*model.Table, error) {
	data, err := os.ReadFile(s.EventsPath)
	if err != nil {
		return nil, &LoadError{Path: s.EventsPath, Err: err}
	}

	header, rows, layout, err := parseDelimited(data)
	if err != nil {
		return nil, &LoadError{Path: s.EventsPath, Err: err}
	}

	tbl := &model.Table{
		Header:    header,
		Delimiter: layout.delimiter,
		BOM:       layout.bom,
		CRLF:      layout.crlf,
	}

	var missing []string
	for _, col := range model.RequiredColumns {
		if tbl.Column(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{Path: s.EventsPath, Missing: missing}
	}

	tbl.Events = make([]model.Event, 0, len(rows))
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, &LoadError{
				Path: s.EventsPath,
				Err:  fmt.Errorf("line %d: expected %d fields, saw %d", i+2, len(header), len(row)),
			}
		}
		cells := make([]string, len(header))
		copy(cells, row)
		tbl.Events = append(tbl.Events, model.Event{Cells: cells})
	}

	appLog.Debug("events loaded", "path", s.EventsPath, "rows", len(tbl.Events), "columns", len(header))
	return tbl, nil
}

// LoadCategories returns the allowed categories in file order, de-duplicated
// and without blanks. When the file is unusable it returns DefaultCategories
// and a *CategoryWarning.
func (s *CSVStore) LoadCategories() ([]string, error) {
	fallback := func(reason string, err error) ([]string, error) {
		return append([]string(nil), DefaultCategories...), &CategoryWarning{Path: s.CategoriesPath, Reason: reason, Err: err}
	}

	data, err := os.ReadFile(s.CategoriesPath)
	if err != nil {
		return fallback("cannot read file", err)
	}
	header, rows, _, err := parseDelimited(data)
	if err != nil {
		return fallback("cannot parse file", err)
	}

	col := -1
	for i, h := range header {
		if h == model.ColCategory {
			col = i
			break
		}
	}
	if col < 0 {
		return fallback("no Category column", nil)
	}

	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	if len(out) == 0 {
		return fallback("no categories listed", nil)
	}
	return out, nil
}

// SaveEvents rewrites the whole events file with the layout recorded in t.
// The write goes to a temp file in the same directory which then replaces
// the original, so a failed write never leaves a truncated file behind.
func (s *CSVStore) SaveEvents(t *model.Table) error {
	var buf bytes.Buffer
	if t.BOM {
		buf.WriteString(utf8BOM)
	}

	w := csv.NewWriter(&buf)
	if t.Delimiter != 0 {
		w.Comma = t.Delimiter
	}
	w.UseCRLF = t.CRLF

	if err := w.Write(t.Header); err != nil {
		return &PersistError{Path: s.EventsPath, Err: err}
	}
	for _, e := range t.Events {
		row := make([]string, len(t.Header))
		copy(row, e.Cells)
		if err := w.Write(row); err != nil {
			return &PersistError{Path: s.EventsPath, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &PersistError{Path: s.EventsPath, Err: err}
	}

	if err := writeFileAtomic(s.EventsPath, buf.Bytes()); err != nil {
		return &PersistError{Path: s.EventsPath, Err: err}
	}
	appLog.Info("events saved", "path", s.EventsPath, "rows", len(t.Events))
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".mktcal-events-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

type fileLayout struct {
	delimiter rune
	bom       bool
	crlf      bool
}

// parseDelimited splits data into a header and rows. Fully blank lines are
// skipped by encoding/csv; ragged rows are allowed and checked by callers.
// A stray quote inside an unquoted field is kept as part of the value.
func parseDelimited(data []byte) ([]string, [][]string, fileLayout, error) {
	var layout fileLayout
	if bytes.HasPrefix(data, []byte(utf8BOM)) {
		layout.bom = true
		data = data[len(utf8BOM):]
	}

	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
		layout.crlf = i > 0 && data[i-1] == '\r'
	}
	layout.delimiter = sniffDelimiter(string(firstLine))

	r := csv.NewReader(bufio.NewReader(bytes.NewReader(data)))
	r.Comma = layout.delimiter
	r.FieldsPerRecord = -1
	// hand-edited sheets carry bare quotes (12" banner); keep them literally
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, layout, errors.New("file is empty")
	}
	if err != nil {
		return nil, nil, layout, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, layout, err
	}
	return header, rows, layout, nil
}

// sniffDelimiter picks the most frequent of , ; and TAB outside quotes.
func sniffDelimiter(line string) rune {
	counts := map[rune]int{}
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case inQuotes:
		case r == ',' || r == ';' || r == '\t':
			counts[r]++
		}
	}
	best := ','
	for _, r := range []rune{';', '\t'} {
		if counts[r] > counts[best] {
			best = r
		}
	}
	return best
}
