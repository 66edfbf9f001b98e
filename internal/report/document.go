package report

import (
	"encoding/json"
	"fmt"
	"os"

	"qfrbench/internal/evaluation"
	"qfrbench/internal/record"
)

// Document is the content of a run's results.json.
type Document struct {
	Report  evaluation.Report `json:"report"`
	Results *record.Results   `json:"results"`
}

// LoadDocument reads a results.json written by a run.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if doc.Results == nil {
		doc.Results = record.NewResults()
	}
	return doc, nil
}
