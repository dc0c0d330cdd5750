package gamesdb

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// csvRow is the on-disk CSV layout. The mask stays textual so hex survives
// a round trip through spreadsheet tools.
type csvRow struct {
	Exe      string `csv:"exe"`
	HookMask string `csv:"hook_mask"`
}

// ImportCSV reads exe,hook_mask rows into the store.
func (s *Store) ImportCSV(r io.Reader) (int, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return 0, fmt.Errorf("import csv: %w", err)
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		if ExeKey(row.Exe) == "" {
			continue
		}
		entries = append(entries, Entry{Exe: row.Exe, HookMask: ParseMask(row.HookMask)})
	}
	if err := s.Put(entries...); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// ExportCSV writes every entry as exe,hook_mask rows with a header.
func (s *Store) ExportCSV(w io.Writer) error {
	entries, err := s.All()
	if err != nil {
		return err
	}
	return WriteCSV(w, entries)
}

// WriteCSV writes entries in the ImportCSV layout.
func WriteCSV(w io.Writer, entries []Entry) error {
	rows := make([]csvRow, len(entries))
	for i, e := range entries {
		rows[i] = csvRow{Exe: e.Exe, HookMask: FormatMask(e.HookMask)}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}
