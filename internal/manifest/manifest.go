// Package manifest builds the training image list from remapped labels.
package manifest

import (
	"context"
	"fmt"
	"log/slog"

	"relabel/internal/fileutil"
	"relabel/internal/logging"
	"relabel/internal/scan"
)

// Options selects the inputs and output of a manifest build.
type Options struct {
	ImageDir  string
	LabelDir  string
	Output    string
	ImageExts []string
	LabelExts []string
}

// Result summarizes a manifest build.
type Result struct {
	Path       string
	Images     int
	Listed     int
	LabelStems int
	Unmatched  int
}

// Build lists every image under ImageDir whose stem matches a label file
// stem under LabelDir and writes their absolute paths, one per line in
// enumeration order, to Output. Images sharing a stem are all listed.
func Build(ctx context.Context, opts Options, logger *slog.Logger) (Result, error) {
	logger = logging.NewComponentLogger(logger, "manifest")
	res := Result{Path: opts.Output}

	stems, err := LabelStems(ctx, opts.LabelDir, opts.LabelExts, logger)
	if err != nil {
		return res, err
	}
	res.LabelStems = len(stems)

	images, err := scan.Files(ctx, opts.ImageDir, opts.ImageExts, logger)
	if err != nil {
		return res, err
	}
	res.Images = len(images)

	listed := Select(images, stems)
	res.Listed = len(listed)
	res.Unmatched = res.Images - res.Listed

	if err := fileutil.WriteLines(opts.Output, listed); err != nil {
		return res, fmt.Errorf("write manifest %s: %w", opts.Output, err)
	}

	logger.Info("manifest written",
		logging.Path(opts.Output),
		slog.Int("images", res.Images),
		slog.Int("listed", res.Listed),
		slog.Int("label_stems", res.LabelStems),
	)
	return res, nil
}

// LabelStems returns the set of label file stems under dir.
func LabelStems(ctx context.Context, dir string, exts []string, logger *slog.Logger) (map[string]struct{}, error) {
	labels, err := scan.Files(ctx, dir, exts, logger)
	if err != nil {
		return nil, err
	}
	stems := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		stems[scan.Stem(label)] = struct{}{}
	}
	return stems, nil
}

// Select keeps the images whose stem is in stems, preserving order.
func Select(images []string, stems map[string]struct{}) []string {
	listed := make([]string, 0, len(images))
	for _, image := range images {
		if _, ok := stems[scan.Stem(image)]; ok {
			listed = append(listed, image)
		}
	}
	return listed
}
