package quiz

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// csvHeader is the first row of every export.
var csvHeader = []string{"question_number", "question", "correct_answer", "user_answer", "is_correct"}

// exportTimeFormat qualifies export file names.
const exportTimeFormat = "20060102_150405"

// WriteCSV writes rows with a header line. Fields are quoted as needed.
func WriteCSV(w io.Writer, rows []ResultRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.QuestionNumber),
			r.Question,
			r.CorrectAnswer,
			r.UserAnswer,
			strconv.FormatBool(r.IsCorrect),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", r.QuestionNumber, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the evaluated results to
// dir/quiz_results_<timestamp>.csv, creating dir if needed, and returns the
// file path. It returns "" and no error when the session has not been
// evaluated.
func (s *Session) ExportCSV(dir string) (string, error) {
	s.mu.Lock()
	if !s.submitted || len(s.questions) == 0 {
		s.mu.Unlock()
		return "", nil
	}
	rows := s.resultsLocked()
	now := s.opts.Now()
	s.mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("quiz_results_%s.csv", now.Format(exportTimeFormat)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
