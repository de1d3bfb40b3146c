// Package scan enumerates dataset files by extension.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"relabel/internal/logging"
)

// Files walks root recursively, root included, and returns the absolute
// paths of regular files, or symlinks to them, whose extension matches one
// of exts. Extensions are compared case-insensitively and include the
// leading dot; an empty exts matches every file. Results are in traversal
// order.
func Files(ctx context.Context, root string, exts []string, logger *slog.Logger) ([]string, error) {
	logger = logging.NewComponentLogger(logger, "scan")

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	allowed := NewExtensionSet(exts)
	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		mode := d.Type()
		if mode&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				return nil
			}
			mode = info.Mode()
		}
		// FIFOs, sockets and devices would block or misbehave when opened.
		if !mode.IsRegular() {
			return nil
		}
		if allowed.Match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", absRoot, err)
	}

	logger.Info("found files",
		slog.Int("count", len(files)),
		logging.Path(absRoot),
		slog.String("extensions", strings.Join(allowed.List(), ",")),
	)
	return files, nil
}

// ExtensionSet is a case-folded extension allow-list.
type ExtensionSet struct {
	exts  map[string]struct{}
	order []string
}

// NewExtensionSet folds and stores exts.
func NewExtensionSet(exts []string) ExtensionSet {
	set := ExtensionSet{exts: make(map[string]struct{}, len(exts))}
	for _, ext := range exts {
		folded := fold(ext)
		if _, ok := set.exts[folded]; ok {
			continue
		}
		set.exts[folded] = struct{}{}
		set.order = append(set.order, folded)
	}
	return set
}

// Match reports whether name's extension is in the set. An empty set
// matches everything.
func (s ExtensionSet) Match(name string) bool {
	if len(s.exts) == 0 {
		return true
	}
	_, ok := s.exts[fold(Ext(name))]
	return ok
}

// List returns the folded extensions in first-seen order.
func (s ExtensionSet) List() []string {
	return append([]string(nil), s.order...)
}

// Ext returns the substring of the base name starting at its last '.', or
// "" when there is none.
func Ext(name string) string {
	base := filepath.Base(name)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return base[i:]
	}
	return ""
}

// Stem returns the base name with its last extension segment removed.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, Ext(base))
}

// cases.Caser keeps state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
