package history

import "time"

// Run is one recorded relabel invocation.
type Run struct {
	ID            int64
	RunID         string
	Suffix        string
	StartedAt     time.Time
	FinishedAt    time.Time
	ImageDir      string
	LabelDir      string
	SourceNames   string
	TargetNames   string
	LabelOutDir   string
	ManifestPath  string
	LabelFiles    int
	LabelsWritten int
	LinesKept     int
	LinesDropped  int
	Images        int
	ImagesListed  int
}

// Duration returns the wall time of the run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
