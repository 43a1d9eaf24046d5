package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cloudkeel/keyaudit/internal/audit"
)

// Default report file names, used when a sink path is not given.
const (
	DefaultJSONName = "access-key-assessment.json"
	DefaultCSVName  = "access-key-assessment.csv"
)

// WriteJSONFile writes the structured document to path.
func WriteJSONFile(path string, a *audit.Assessment) error {
	doc := NewDocument(a)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing JSON report: %w", err)
	}
	return nil
}

// WriteCSVFile writes the flat tabular report to path.
func WriteCSVFile(path string, a *audit.Assessment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV report: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, a); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing CSV report: %w", err)
	}
	return nil
}
