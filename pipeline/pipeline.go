// Package pipeline runs the extraction-and-filtering pipeline over one
// fetched booking-result document and prepares the rendered report.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ysadouski/rwsched/extract"
	"github.com/ysadouski/rwsched/models"
	"github.com/ysadouski/rwsched/render"
)

// OutputWriter defines the interface for report export.
type OutputWriter interface {
	Write(records []models.TrainRecord) error
	Close() error
	Validate() error
}

// Pipeline is a single-run, synchronous transformation: document in,
// rendered lines out. No state survives a run.
type Pipeline struct {
	criteria models.FilterCriteria
	writer   OutputWriter
}

// New builds a pipeline for the resolved criteria. writer may be nil
// when no export was requested.
func New(criteria models.FilterCriteria, writer OutputWriter) *Pipeline {
	return &Pipeline{criteria: criteria, writer: writer}
}

// Result is the outcome of one pipeline run.
type Result struct {
	Records   []models.TrainRecord
	Lines     []string
	Extracted int
}

// Run parses the document, extracts records with type/selling filters
// rejecting rows early, applies the remaining criteria, renders the
// grouped report, and exports the surviving records when a writer is
// configured. Any failure aborts with no partial output.
func (p *Pipeline) Run(html string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	records, err := extract.Trains(doc, extract.Options{
		Types:   p.criteria.TrainTypes,
		Selling: p.criteria.Selling,
	})
	if err != nil {
		return nil, err
	}
	extracted := len(records)

	records = Apply(records, p.criteria)

	lines, err := render.Report(records)
	if err != nil {
		return nil, err
	}

	if p.writer != nil && len(records) > 0 {
		if err := p.writer.Write(records); err != nil {
			return nil, fmt.Errorf("export records: %w", err)
		}
	}

	return &Result{Records: records, Lines: lines, Extracted: extracted}, nil
}
