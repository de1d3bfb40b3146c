package remap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"relabel/internal/fileutil"
	"relabel/internal/logging"
	"relabel/internal/scan"
	"relabel/internal/vocab"
)

// Remapper translates class indices from a source to a target vocabulary.
type Remapper struct {
	source *vocab.Vocabulary
	target *vocab.Vocabulary
	logger *slog.Logger
}

// FileResult describes the outcome for one label file.
type FileResult struct {
	Source    string
	Output    string // empty when nothing survived
	Kept      int
	Dropped   int
	Classes   map[string]int // kept lines per class name
	DroppedBy map[string]int // dropped lines per source class name
}

// Written reports whether an output file was produced.
func (r FileResult) Written() bool { return r.Output != "" }

// Result aggregates a directory run.
type Result struct {
	Files        int
	Written      int
	Empty        int
	LinesKept    int
	LinesDropped int
	Classes      map[string]int
	DroppedBy    map[string]int // dropped lines per source class name
	Collisions   int
}

// New validates the vocabularies and returns a Remapper. The target must not
// repeat a name.
func New(source, target *vocab.Vocabulary, logger *slog.Logger) (*Remapper, error) {
	if dups := target.Duplicates(); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTargetName, strings.Join(dups, ", "))
	}
	logger = logging.NewComponentLogger(logger, "remap")
	if dups := source.Duplicates(); len(dups) > 0 {
		logger.Warn("source vocabulary repeats names; first position wins",
			slog.String("names", strings.Join(dups, ",")))
	}
	if missing := missingTargets(source, target); len(missing) > 0 {
		logger.Warn("target classes absent from source vocabulary",
			slog.String("names", strings.Join(missing, ",")))
	}
	return &Remapper{source: source, target: target, logger: logger}, nil
}

func missingTargets(source, target *vocab.Vocabulary) []string {
	var missing []string
	for _, name := range target.Names() {
		if _, ok := source.Index(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Line rewrites a single annotation. keep is false for blank and comment
// lines and for classes not in the target vocabulary; name is the source
// class name when one was resolved.
func (m *Remapper) Line(line string) (out string, name string, keep bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false, nil
	}

	head, tail := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		head, tail = line[:i], line[i:]
	}

	idx, convErr := strconv.Atoi(head)
	if convErr != nil {
		return "", "", false, fmt.Errorf("%w: class %q is not an integer", ErrMalformedLine, head)
	}
	name, ok := m.source.Name(idx)
	if !ok {
		return "", "", false, fmt.Errorf("%w: %d not in [0,%d)", ErrClassOutOfRange, idx, m.source.Len())
	}
	newIdx, ok := m.target.Index(name)
	if !ok {
		return "", name, false, nil
	}
	return strconv.Itoa(newIdx) + tail, name, true, nil
}

// File remaps the label file at src and writes the surviving lines to a file
// of the same base name in outDir. Nothing is written when no line survives.
func (m *Remapper) File(src, outDir string) (FileResult, error) {
	res := FileResult{Source: src, Classes: map[string]int{}, DroppedBy: map[string]int{}}

	lines, err := m.readFile(&res)
	if err != nil {
		return res, err
	}
	if len(lines) == 0 {
		return res, nil
	}

	dst := filepath.Join(outDir, filepath.Base(src))
	if err := fileutil.WriteLines(dst, lines); err != nil {
		return res, fmt.Errorf("write label file %s: %w", dst, err)
	}
	res.Output = dst
	return res, nil
}

func (m *Remapper) readFile(res *FileResult) ([]string, error) {
	f, err := os.Open(res.Source)
	if err != nil {
		return nil, fmt.Errorf("open label file: %w", err)
	}
	defer f.Close()

	var kept []string
	lineNo := 0
	scanner := fileutil.NewLineScanner(f)
	for scanner.Scan() {
		lineNo++
		out, name, keep, err := m.Line(scanner.Text())
		if err != nil {
			return nil, &LineError{Path: res.Source, Line: lineNo, Err: err}
		}
		switch {
		case keep:
			kept = append(kept, out)
			res.Kept++
			res.Classes[name]++
		case name != "":
			res.Dropped++
			res.DroppedBy[name]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read label file %s: %w", res.Source, err)
	}
	return kept, nil
}

// Dir remaps every label file under srcDir whose extension is in exts into
// outDir, which must already exist. The first data or I/O error aborts the
// run; files written before it are left in place.
func (m *Remapper) Dir(ctx context.Context, srcDir, outDir string, exts []string) (Result, error) {
	res := Result{Classes: map[string]int{}, DroppedBy: map[string]int{}}

	files, err := scan.Files(ctx, srcDir, exts, m.logger)
	if err != nil {
		return res, err
	}

	written := make(map[string]string, len(files))
	for _, src := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		fr, err := m.File(src, outDir)
		if err != nil {
			return res, err
		}
		res.Files++
		res.LinesKept += fr.Kept
		res.LinesDropped += fr.Dropped
		for name, n := range fr.Classes {
			res.Classes[name] += n
		}
		for name, n := range fr.DroppedBy {
			res.DroppedBy[name] += n
		}
		if !fr.Written() {
			res.Empty++
			m.logger.Debug("no target classes in label file", logging.Path(src), slog.Int("dropped", fr.Dropped))
			continue
		}
		res.Written++
		base := filepath.Base(src)
		if prev, ok := written[base]; ok {
			res.Collisions++
			m.logger.Warn("label file name collision, later file replaces earlier",
				slog.String("earlier", prev), slog.String("later", src))
		}
		written[base] = src
	}

	m.logger.Info("remapped labels",
		slog.Int("files", res.Files),
		slog.Int("written", res.Written),
		slog.Int("empty", res.Empty),
		slog.Int("lines_kept", res.LinesKept),
		slog.Int("lines_dropped", res.LinesDropped),
	)
	return res, nil
}
