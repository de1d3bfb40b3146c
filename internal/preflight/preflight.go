package preflight

import (
	"errors"
	"fmt"
	"strings"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Inputs names the paths a run depends on. All paths are expected to be
// absolute.
type Inputs struct {
	ImageDir    string
	LabelDir    string
	SourceNames string
	TargetNames string
	OutputDir   string
}

// RunAll executes every check for in.
func RunAll(in Inputs) []Result {
	return []Result{
		CheckDirectoryRead("Image directory", in.ImageDir),
		CheckDirectoryRead("Label directory", in.LabelDir),
		CheckFile("Source names file", in.SourceNames),
		CheckFile("Target names file", in.TargetNames),
		CheckDirectoryAccess("Output directory", in.OutputDir),
	}
}

// Failures joins the failed results into one error, or returns nil.
func Failures(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errors.New(strings.Join(failed, "; "))
}
