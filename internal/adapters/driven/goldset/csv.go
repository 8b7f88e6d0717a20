// Package goldset reads labelled evaluation cases and writes
// per-case result rows, both as CSV.
package goldset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/opencampus-labs/handbook-cli/internal/core/domain"
)

var goldColumns = []string{"qid", "question", "type", "gold_chunk", "notes"}

var resultColumns = []string{
	"qid", "question", "type", "gold_chunk",
	"pred_chunk", "hit1", "answer_text", "notes",
}

// LoadGold reads the gold set CSV at path. The header must carry at
// least the qid, question, type, gold_chunk and notes columns, in any
// order. Rows with an empty qid are skipped.
func LoadGold(path string) ([]domain.GoldCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gold set: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading gold set: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("gold set %s: missing header row", path)
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[name] = i
	}
	for _, name := range goldColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("gold set %s: missing column %q", path, name)
		}
	}

	field := func(row []string, name string) string {
		i := col[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var cases []domain.GoldCase
	for _, row := range records[1:] {
		c := domain.GoldCase{
			QID:       field(row, "qid"),
			Question:  field(row, "question"),
			Type:      field(row, "type"),
			GoldChunk: field(row, "gold_chunk"),
			Notes:     field(row, "notes"),
		}
		if c.QID == "" {
			continue
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// WriteResults writes per-case evaluation rows to path, overwriting
// any previous file. The hit1 column is blank for unscored cases.
func WriteResults(path string, results []domain.EvalCaseResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(resultColumns); err != nil {
		return fmt.Errorf("writing results header: %w", err)
	}

	for _, r := range results {
		hit1 := ""
		if r.Hit1 != nil {
			hit1 = strconv.Itoa(*r.Hit1)
		}
		row := []string{
			r.QID, r.Question, r.Type, r.GoldChunk,
			r.PredChunk, hit1, r.Answer, r.Notes,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing result row %s: %w", r.QID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing results file: %w", err)
	}
	return nil
}
