// pkg/pipeline/job.go
package pipeline

import (
	"fmt"
	"time"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// EntityJob describes one extract/clean/load unit of the run: where the
// raw data comes from, how it is cleaned and which destination table it
// replaces.
type EntityJob struct {
	Entity string // short entity name used in logs
	Table  string // destination table in the local database
	Fetch  FetchFunc
	Clean  CleanFunc
}

// FetchFunc produces the raw dataset for an entity.
type FetchFunc func() (*dataset.Dataset, error)

// CleanFunc cleans a raw dataset in place.
type CleanFunc func(ds *dataset.Dataset) error

// JobResult records the outcome of a single entity job.
type JobResult struct {
	Entity      string
	Table       string
	Success     bool
	RowsRead    int
	RowsLoaded  int
	RowsDropped int
	Err         error
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}

// newJobResult initializes a result for a job.
func newJobResult(job EntityJob) *JobResult {
	return &JobResult{
		Entity:    job.Entity,
		Table:     job.Table,
		StartTime: time.Now(),
	}
}

// complete marks the job as finished and calculates the duration.
func (r *JobResult) complete(err error) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Err = err
	r.Success = err == nil
}

// RunSummary aggregates the results of a full pipeline run.
type RunSummary struct {
	Results        []*JobResult
	SuccessfulJobs int
	FailedJobs     []string
	TotalRows      int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// NewRunSummary initializes a run summary.
func NewRunSummary() *RunSummary {
	return &RunSummary{
		Results:    make([]*JobResult, 0),
		FailedJobs: make([]string, 0),
	}
}

// addResult incorporates a job result into the summary.
func (s *RunSummary) addResult(result *JobResult) {
	s.Results = append(s.Results, result)
	if result.Success {
		s.SuccessfulJobs++
		s.TotalRows += result.RowsLoaded
	} else {
		s.FailedJobs = append(s.FailedJobs, result.Entity)
	}
}

// complete marks the run as finished and calculates the duration.
func (s *RunSummary) complete() {
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

// Succeeded reports whether every job in the run completed.
func (s *RunSummary) Succeeded() bool {
	return len(s.FailedJobs) == 0
}

// String renders a one-line human readable summary.
func (s *RunSummary) String() string {
	return fmt.Sprintf("%d/%d entities loaded, %d rows, %s",
		s.SuccessfulJobs, len(s.Results), s.TotalRows, s.Duration.Round(time.Millisecond))
}
