package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/lysyi3m/gh-task-viewer/app/board"
	"github.com/lysyi3m/gh-task-viewer/app/match"
)

// JSON writes records unmodified as one indented array.
func JSON(w io.Writer, records []match.Record) error {
	if records == nil {
		records = []match.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}

// Fields writes the distinct start field names, sorted, one per line, and
// returns how many were written.
func Fields(w io.Writer, records []match.Record) (int, error) {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.StartField)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return 0, fmt.Errorf("failed to write field names: %w", err)
		}
	}
	return len(names), nil
}

// Boards writes the open boards of one owner for discover mode.
func Boards(w io.Writer, owner board.Owner, boards []board.Board) error {
	if _, err := fmt.Fprintln(w, owner.String()); err != nil {
		return err
	}
	if len(boards) == 0 {
		_, err := fmt.Fprintln(w, "  (no open boards or insufficient access)")
		return err
	}
	for _, b := range boards {
		if _, err := fmt.Fprintf(w, "  #%d: %s\n", b.Number, b.Title); err != nil {
			return err
		}
	}
	return nil
}
