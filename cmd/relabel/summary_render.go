package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"relabel/internal/run"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const statusLabelWidth = 14

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	line := fmt.Sprintf("%-*s [%s] %s", statusLabelWidth, label+":", statusKindLabel(kind), message)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + line + ansiReset
		}
	}
	return line
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderSummary formats a completed run for the terminal.
func renderSummary(sum *run.Summary, colorize bool) string {
	var b strings.Builder

	labelKind := statusOK
	if sum.Remap.Written == 0 {
		labelKind = statusWarn
	}
	fmt.Fprintln(&b, renderStatusLine("Labels", labelKind,
		fmt.Sprintf("%d of %d files written to %s", sum.Remap.Written, sum.Remap.Files, sum.LabelOutDir), colorize))

	manifestKind := statusOK
	if sum.Manifest.Listed == 0 {
		manifestKind = statusWarn
	}
	fmt.Fprintln(&b, renderStatusLine("Manifest", manifestKind,
		fmt.Sprintf("%d of %d images listed in %s", sum.Manifest.Listed, sum.Manifest.Images, sum.ManifestPath), colorize))

	if sum.Remap.Collisions > 0 {
		fmt.Fprintln(&b, renderStatusLine("Collisions", statusWarn,
			fmt.Sprintf("%d label files shared a base name; later files replaced earlier ones", sum.Remap.Collisions), colorize))
	}

	rows := [][]string{
		{"Suffix", sum.Suffix},
		{"Source classes", strconv.Itoa(sum.SourceLen)},
		{"Target classes", strconv.Itoa(sum.TargetLen)},
		{"Label files", strconv.Itoa(sum.Remap.Files)},
		{"Without targets", strconv.Itoa(sum.Remap.Empty)},
		{"Lines kept", strconv.Itoa(sum.Remap.LinesKept)},
		{"Lines dropped", strconv.Itoa(sum.Remap.LinesDropped)},
		{"Unmatched images", strconv.Itoa(sum.Manifest.Unmatched)},
		{"Duration", formatDuration(sum.FinishedAt.Sub(sum.StartedAt))},
	}
	fmt.Fprintln(&b, renderTable([]column{left("Run"), left("Value")}, rows))

	if len(sum.Remap.Classes) > 0 {
		fmt.Fprintln(&b, countTable("Class", "Boxes", classRows(sum.Remap.Classes)))
	}
	return b.String()
}

func classRows(counts map[string]int) [][]string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(counts[name])})
	}
	return rows
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}

// summaryView is the JSON shape of a run summary.
type summaryView struct {
	RunID        string         `json:"run_id"`
	Suffix       string         `json:"suffix"`
	ImageDir     string         `json:"image_dir"`
	LabelDir     string         `json:"label_dir"`
	SourceNames  string         `json:"source_names"`
	TargetNames  string         `json:"target_names"`
	LabelOutDir  string         `json:"label_output_dir"`
	ManifestPath string         `json:"manifest"`
	LabelFiles   int            `json:"label_files"`
	Written      int            `json:"label_files_written"`
	Empty        int            `json:"label_files_without_targets"`
	LinesKept    int            `json:"lines_kept"`
	LinesDropped int            `json:"lines_dropped"`
	Classes      map[string]int `json:"classes"`
	Collisions   int            `json:"collisions"`
	Images       int            `json:"images"`
	Listed       int            `json:"images_listed"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
	HistoryID    int64          `json:"history_id,omitempty"`
}

func newSummaryView(sum *run.Summary) summaryView {
	return summaryView{
		RunID:        sum.RunID,
		Suffix:       sum.Suffix,
		ImageDir:     sum.Inputs.ImageDir,
		LabelDir:     sum.Inputs.LabelDir,
		SourceNames:  sum.Inputs.SourceNames,
		TargetNames:  sum.Inputs.TargetNames,
		LabelOutDir:  sum.LabelOutDir,
		ManifestPath: sum.ManifestPath,
		LabelFiles:   sum.Remap.Files,
		Written:      sum.Remap.Written,
		Empty:        sum.Remap.Empty,
		LinesKept:    sum.Remap.LinesKept,
		LinesDropped: sum.Remap.LinesDropped,
		Classes:      sum.Remap.Classes,
		Collisions:   sum.Remap.Collisions,
		Images:       sum.Manifest.Images,
		Listed:       sum.Manifest.Listed,
		StartedAt:    sum.StartedAt,
		FinishedAt:   sum.FinishedAt,
		HistoryID:    sum.HistoryID,
	}
}
