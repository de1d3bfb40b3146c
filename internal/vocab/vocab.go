// Package vocab loads class-name vocabularies. A name's position in the list
// is its class index.
package vocab

import (
	"fmt"
	"io"
	"os"
	"strings"

	"relabel/internal/fileutil"
)

// Vocabulary is an ordered list of class names with a name-to-index table.
// It is read-only after construction.
type Vocabulary struct {
	names      []string
	index      map[string]int
	duplicates []string
}

// New builds a vocabulary from names in order. Repeated names keep their
// first position in the lookup table and are reported by Duplicates.
func New(names []string) *Vocabulary {
	v := &Vocabulary{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
	}
	for _, name := range names {
		if _, ok := v.index[name]; ok {
			v.duplicates = append(v.duplicates, name)
		} else {
			v.index[name] = len(v.names)
		}
		v.names = append(v.names, name)
	}
	return v
}

// Load reads a names file. The caller is expected to have checked that path
// is a regular file.
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open names file: %w", err)
	}
	defer f.Close()

	v, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read names file %s: %w", path, err)
	}
	return v, nil
}

// Parse reads one name per line. Lines are trimmed; empty lines and lines
// starting with '#' are skipped.
func Parse(r io.Reader) (*Vocabulary, error) {
	var names []string
	scanner := fileutil.NewLineScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return New(names), nil
}

// Len returns the number of classes.
func (v *Vocabulary) Len() int { return len(v.names) }

// Name returns the class name at index i.
func (v *Vocabulary) Name(i int) (string, bool) {
	if i < 0 || i >= len(v.names) {
		return "", false
	}
	return v.names[i], true
}

// Index returns the first position of name.
func (v *Vocabulary) Index(name string) (int, bool) {
	i, ok := v.index[name]
	return i, ok
}

// Names returns a copy of the names in index order.
func (v *Vocabulary) Names() []string {
	return append([]string(nil), v.names...)
}

// Duplicates lists names that appear more than once, in the order their
// repeats were encountered.
func (v *Vocabulary) Duplicates() []string {
	return append([]string(nil), v.duplicates...)
}
