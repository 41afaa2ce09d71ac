package operations

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Report is the record of one RunAll dispatch over a dataset.
type Report struct {
	ID        string         `json:"id" yaml:"id" toml:"id"`
	Dataset   string         `json:"dataset,omitempty" yaml:"dataset,omitempty" toml:"dataset,omitempty"`
	Timestamp *time.Time     `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	Input     Sequence       `json:"input" yaml:"input" toml:"input"`
	Results   []ReportResult `json:"results" yaml:"results" toml:"results"`
	Err       *ReportError   `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// ReportResult is the serializable form of a Result.
type ReportResult struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Value *float64 `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"` // Nil when the operation failed.
	Error string   `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// ReportError represents an error in the Report.
// Its purpose is to have an exported field `Message` for marshalling as the
// native error cant be marshaled.
type ReportError struct {
	Message string `json:"message" yaml:"message" toml:"message"`
}

// Error implements the error interface.
func (o ReportError) Error() string {
	return o.Message
}

// NewReport creates a new report for a dispatch of input under the dataset name.
func NewReport(dataset string, input Sequence, results []Result, err error) Report {
	now := time.Now()
	r := Report{
		ID:        uuid.New().String(),
		Dataset:   dataset,
		Timestamp: &now,
		Input:     input,
		Results:   make([]ReportResult, 0, len(results)),
	}

	for _, res := range results {
		rr := ReportResult{Name: res.Name}
		if res.Err != nil {
			rr.Error = res.Err.Error()
		} else {
			v := res.Value
			rr.Value = &v
		}
		r.Results = append(r.Results, rr)
	}

	if err != nil {
		r.Err = &ReportError{Message: err.Error()}
	}

	return r
}

// Failed reports whether the dispatch returned an error.
func (r Report) Failed() bool {
	return r.Err != nil
}

var ErrReportNotFound = errors.New("report not found")

// Reporter stores reports.
type Reporter interface {
	GetReport(id string) (Report, error)
	GetReports() ([]Report, error)
	AddReport(report Report) error
}

// MemoryReporter stores reports in memory.
// This is thread-safe and can be used in a multi-threaded environment.
type MemoryReporter struct {
	reports []Report
	mu      sync.RWMutex
}

var _ Reporter = (*MemoryReporter)(nil)

// NewMemoryReporter creates a new MemoryReporter.
func NewMemoryReporter() *MemoryReporter {
	return &MemoryReporter{}
}

// AddReport adds a report to the memory reporter.
func (e *MemoryReporter) AddReport(report Report) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reports = append(e.reports, report)

	return nil
}

// GetReports returns all reports in the order they were added.
func (e *MemoryReporter) GetReports() ([]Report, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	// Create a copy to avoid data races after returning
	reports := make([]Report, len(e.reports))
	copy(reports, e.reports)

	return reports, nil
}

// GetReport returns a report by ID.
// Returns ErrReportNotFound if the report is not found.
func (e *MemoryReporter) GetReport(id string) (Report, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, report := range e.reports {
		if report.ID == id {
			return report, nil
		}
	}

	return Report{}, fmt.Errorf("report_id %s: %w", id, ErrReportNotFound)
}
