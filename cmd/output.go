package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
	"time"

	"github.com/TFMV/fsvisit/visit"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/table"
)

// Output formats
const (
	formatText  = "text"
	formatJSON  = "json"
	formatTable = "table"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatTable:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (expected text, json or table)", format)
	}
}

// entryRecord is the JSON form of an entry.
type entryRecord struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Size     int64     `json:"size,omitempty"`
	Modified time.Time `json:"modified,omitzero"`
}

func newEntryRecord(e visit.Entry) entryRecord {
	rec := entryRecord{Path: e.Path, Name: e.Name(), Kind: e.Kind.String()}
	if info, err := os.Lstat(e.Path); err == nil {
		if !e.IsDir() {
			rec.Size = info.Size()
		}
		rec.Modified = info.ModTime()
	}
	return rec
}

// printEntries writes entries to w. A non-empty template overrides the
// text format.
func printEntries(w io.Writer, entries iter.Seq[visit.Entry], format, template string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		for e := range entries {
			if err := enc.Encode(newEntryRecord(e)); err != nil {
				return fmt.Errorf("encode %s: %w", e.Path, err)
			}
		}
		return nil
	case formatTable:
		return printTable(w, entries)
	}

	for e := range entries {
		line := e.Path
		if template != "" {
			line = visit.Format(template, e)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func printTable(w io.Writer, entries iter.Seq[visit.Entry]) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Kind", "Path", "Size", "Modified"})

	var files, dirs int
	var total int64
	for e := range entries {
		rec := newEntryRecord(e)
		size := ""
		if e.IsDir() {
			dirs++
		} else {
			files++
			total += rec.Size
			size = humanize.Bytes(uint64(rec.Size))
		}
		modified := ""
		if !rec.Modified.IsZero() {
			modified = humanize.Time(rec.Modified)
		}
		t.AppendRow(table.Row{rec.Kind, rec.Path, size, modified})
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d files, %d directories", files, dirs), humanize.Bytes(uint64(total)), ""})
	t.Render()
	return nil
}
