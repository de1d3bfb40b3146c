package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"relabel/internal/config"
	"relabel/internal/history"
	"relabel/internal/logging"
	"relabel/internal/manifest"
	"relabel/internal/preflight"
	"relabel/internal/remap"
	"relabel/internal/vocab"
)

var (
	// ErrConfig marks invalid inputs detected before processing starts.
	ErrConfig = errors.New("invalid configuration")
	// ErrBusy reports that another run holds the output directory lock.
	ErrBusy = errors.New("output directory is locked by another relabel run")
)

const suffixAttempts = 5

// Options names the inputs of a run. Relative paths are resolved against
// WorkDir, which defaults to the process working directory.
type Options struct {
	ImageDir    string
	LabelDir    string
	SourceNames string
	TargetNames string
	WorkDir     string
	// OutputDir overrides paths.output_dir.
	OutputDir string
	// Suffix overrides the generated unique suffix.
	Suffix string
}

// Summary describes a completed run.
type Summary struct {
	RunID        string
	Suffix       string
	Inputs       preflight.Inputs
	LabelOutDir  string
	ManifestPath string
	SourceLen    int
	TargetLen    int
	Remap        remap.Result
	Manifest     manifest.Result
	StartedAt    time.Time
	FinishedAt   time.Time
	HistoryID    int64
}

// Runner executes relabel runs with a fixed configuration.
type Runner struct {
	cfg    *config.Config
	base   *slog.Logger
	logger *slog.Logger
	now    func() time.Time
}

// New returns a Runner. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		base:   logger,
		logger: logging.NewComponentLogger(logger, "run"),
		now:    time.Now,
	}
}

// Run executes one remap-and-manifest pass.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	in, err := r.resolve(opts)
	if err != nil {
		return nil, err
	}
	if err := preflight.Failures(preflight.RunAll(in)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	for _, p := range []struct{ name, path string }{
		{"image_dir", in.ImageDir},
		{"label_dir", in.LabelDir},
		{"source_names", in.SourceNames},
		{"target_names", in.TargetNames},
	} {
		r.logger.Info("input", slog.String("name", p.name), logging.Path(p.path))
	}

	source, err := vocab.Load(in.SourceNames)
	if err != nil {
		return nil, err
	}
	target, err := vocab.Load(in.TargetNames)
	if err != nil {
		return nil, err
	}
	r.logger.Info("vocabularies loaded",
		slog.Int("source", source.Len()),
		slog.Int("target", target.Len()),
		slog.String("target_names", strings.Join(target.Names(), ",")),
	)
	remapper, err := remap.New(source, target, r.base)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, in.TargetNames, err)
	}

	lock := flock.New(config.LockPath(in.OutputDir))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrBusy, in.OutputDir)
	}
	defer releaseLock(lock)

	sum := &Summary{
		RunID:     uuid.NewString(),
		Inputs:    in,
		SourceLen: source.Len(),
		TargetLen: target.Len(),
		StartedAt: r.now(),
	}
	if err := r.prepareOutputs(sum, opts.Suffix); err != nil {
		return nil, err
	}
	r.logger.Info("writing outputs",
		slog.String("suffix", sum.Suffix),
		slog.String("label_dir", sum.LabelOutDir),
		slog.String("manifest", sum.ManifestPath),
	)

	sum.Remap, err = remapper.Dir(ctx, in.LabelDir, sum.LabelOutDir, r.cfg.Extensions.Labels)
	if err != nil {
		return sum, fmt.Errorf("remap labels: %w", err)
	}

	sum.Manifest, err = manifest.Build(ctx, manifest.Options{
		ImageDir:  in.ImageDir,
		LabelDir:  sum.LabelOutDir,
		Output:    sum.ManifestPath,
		ImageExts: r.cfg.Extensions.Images,
		LabelExts: r.cfg.Extensions.Labels,
	}, r.base)
	if err != nil {
		return sum, fmt.Errorf("build manifest: %w", err)
	}
	sum.FinishedAt = r.now()

	r.record(ctx, sum)
	return sum, nil
}

func (r *Runner) resolve(opts Options) (preflight.Inputs, error) {
	workDir := strings.TrimSpace(opts.WorkDir)
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return preflight.Inputs{}, fmt.Errorf("determine working directory: %w", err)
		}
		workDir = wd
	}

	outputDir := strings.TrimSpace(opts.OutputDir)
	if outputDir == "" {
		outputDir = r.cfg.Paths.OutputDir
	}
	if outputDir == "" {
		outputDir = workDir
	}

	return preflight.Inputs{
		ImageDir:    absolute(workDir, opts.ImageDir),
		LabelDir:    absolute(workDir, opts.LabelDir),
		SourceNames: absolute(workDir, opts.SourceNames),
		TargetNames: absolute(workDir, opts.TargetNames),
		OutputDir:   absolute(workDir, outputDir),
	}, nil
}

// releaseLock removes the lock file while the lock is still held, then
// unlocks, so no lock file is left in the output directory.
func releaseLock(lock *flock.Flock) {
	_ = os.Remove(lock.Path())
	_ = lock.Unlock()
}

func absolute(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// prepareOutputs picks a suffix whose label directory and manifest do not
// exist yet and creates the label directory.
func (r *Runner) prepareOutputs(sum *Summary, suffix string) error {
	prefix := filepath.Base(sum.Inputs.LabelDir)
	for attempt := 0; attempt < suffixAttempts; attempt++ {
		candidate := suffix
		if candidate == "" {
			candidate = UniqueSuffix(sum.StartedAt)
		}
		labelOut := filepath.Join(sum.Inputs.OutputDir, prefix+"_"+candidate)
		manifestPath := filepath.Join(sum.Inputs.OutputDir, "train_"+candidate+".txt")

		info, err := os.Stat(labelOut)
		switch {
		case err == nil && !info.IsDir():
			return fmt.Errorf("%w: cannot create directory %s: a file with the same name exists", ErrConfig, labelOut)
		case err == nil, exists(manifestPath):
			if suffix != "" {
				// An explicit suffix reuses the outputs, overwriting stale files.
				break
			}
			continue
		case !os.IsNotExist(err):
			return fmt.Errorf("stat %s: %w", labelOut, err)
		}

		if err := os.MkdirAll(labelOut, 0o755); err != nil {
			return fmt.Errorf("create label directory: %w", err)
		}
		sum.Suffix = candidate
		sum.LabelOutDir = labelOut
		sum.ManifestPath = manifestPath
		return nil
	}
	return fmt.Errorf("could not find an unused output suffix in %s", sum.Inputs.OutputDir)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (r *Runner) record(ctx context.Context, sum *Summary) {
	if !r.cfg.History.Enabled {
		return
	}
	store, err := history.Open(ctx, r.cfg.HistoryPath())
	if err != nil {
		r.logger.Warn("history unavailable; run not recorded", logging.Error(err))
		return
	}
	defer store.Close()

	id, err := store.Record(ctx, sum.HistoryRun())
	if err != nil {
		r.logger.Warn("run not recorded", logging.Error(err))
		return
	}
	sum.HistoryID = id
	if removed, err := store.Prune(ctx, r.cfg.History.Keep); err != nil {
		r.logger.Warn("history prune failed", logging.Error(err))
	} else if removed > 0 {
		r.logger.Debug("history pruned", slog.Int64("removed", removed))
	}
}

// HistoryRun converts the summary into a history record.
func (s *Summary) HistoryRun() history.Run {
	return history.Run{
		RunID:         s.RunID,
		Suffix:        s.Suffix,
		StartedAt:     s.StartedAt,
		FinishedAt:    s.FinishedAt,
		ImageDir:      s.Inputs.ImageDir,
		LabelDir:      s.Inputs.LabelDir,
		SourceNames:   s.Inputs.SourceNames,
		TargetNames:   s.Inputs.TargetNames,
		LabelOutDir:   s.LabelOutDir,
		ManifestPath:  s.ManifestPath,
		LabelFiles:    s.Remap.Files,
		LabelsWritten: s.Remap.Written,
		LinesKept:     s.Remap.LinesKept,
		LinesDropped:  s.Remap.LinesDropped,
		Images:        s.Manifest.Images,
		ImagesListed:  s.Manifest.Listed,
	}
}
