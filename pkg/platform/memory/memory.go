// Package memory implements pkg/host's capability interfaces entirely
// in process memory: a buffered console, a fixed clock, a fixed entropy
// source, a no-op editor, and a map-backed program store. It exists for
// the evaluator's own tests and for embedding EndBASIC headlessly, the
// way the teacher's interpreter tests drive the core against an
// in-memory output buffer instead of a real terminal.
package memory

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-endbasic/endbasic/pkg/host"
)

const programExt = ".bas"

// normalizeName reduces a caller-supplied program name to the same
// canonical key native.Store uses on disk: its basename, with no
// directory components, a trailing ".bas" (case-insensitive) stripped,
// and lower-cased, so "x", "x.bas", and "X.BAS" all refer to the same
// program.
func normalizeName(name string) string {
	name = filepath.Base(filepath.Clean(name))
	if ext := filepath.Ext(name); strings.EqualFold(ext, programExt) {
		name = name[:len(name)-len(ext)]
	}
	return strings.ToLower(name)
}

// Console buffers everything written to it and serves ReadLine from a
// pre-loaded line queue, so a test can script a whole INPUT session.
type Console struct {
	Out   strings.Builder
	fg    *int
	bg    *int
	row   int
	col   int
	lines []string
	next  int
}

// NewConsole creates a Console whose ReadLine calls serve lines in
// order.
func NewConsole(lines ...string) *Console {
	return &Console{lines: lines}
}

func (c *Console) Clear() error {
	c.Out.Reset()
	return nil
}

func (c *Console) SetColor(fg, bg *int) error {
	if fg != nil {
		c.fg = fg
	}
	if bg != nil {
		c.bg = bg
	}
	return nil
}

func (c *Console) Locate(row, col int) error {
	c.row, c.col = row, col
	return nil
}

func (c *Console) Write(s string) error {
	c.Out.WriteString(s)
	return nil
}

func (c *Console) WriteLine(s string) error {
	c.Out.WriteString(s)
	c.Out.WriteByte('\n')
	return nil
}

// ReadLine writes a non-empty prompt to Out and returns the next
// scripted line, or an error once the queue is exhausted.
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		c.Out.WriteString(prompt)
	}
	if c.next >= len(c.lines) {
		return "", fmt.Errorf("console: no more scripted input")
	}
	line := c.lines[c.next]
	c.next++
	return line, nil
}

func (c *Console) Size() (rows, cols int, err error) { return 24, 80, nil }

// Clock reports a fixed instant, set at construction, so time-dependent
// output (DIR's mtime column) is reproducible in tests.
type Clock struct {
	At time.Time
}

func NewClock(at time.Time) Clock { return Clock{At: at} }

func (c Clock) Now() time.Time { return c.At }

// Entropy always returns the same seed, making RANDOMIZE with no
// argument deterministic in tests.
type Entropy struct {
	Value int64
}

func NewEntropy(value int64) Entropy { return Entropy{Value: value} }

func (e Entropy) Seed() int64 { return e.Value }

// Editor returns currentText unchanged, simulating a user who opens the
// editor and saves without changes.
type Editor struct{}

func (Editor) Edit(currentText string) (string, error) { return currentText, nil }

// Store is a map-backed host.ProgramStore for tests and headless
// embedding; it needs no filesystem.
type Store struct {
	programs map[string]string
	modTimes map[string]time.Time
	clock    Clock
}

// NewStore creates an empty Store whose stored mtimes come from clock.
func NewStore(clock Clock) *Store {
	return &Store{programs: make(map[string]string), modTimes: make(map[string]time.Time), clock: clock}
}

func (s *Store) Enumerate() ([]host.FileInfo, error) {
	out := make([]host.FileInfo, 0, len(s.programs))
	for name, text := range s.programs {
		out = append(out, host.FileInfo{Name: name, Size: int64(len(text)), ModTime: s.modTimes[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) Get(name string) (string, error) {
	name = normalizeName(name)
	text, ok := s.programs[name]
	if !ok {
		return "", fmt.Errorf("program store: no such program %s", name)
	}
	return text, nil
}

func (s *Store) Put(name, text string) error {
	name = normalizeName(name)
	s.programs[name] = text
	s.modTimes[name] = s.clock.Now()
	return nil
}

func (s *Store) Delete(name string) error {
	name = normalizeName(name)
	if _, ok := s.programs[name]; !ok {
		return fmt.Errorf("program store: no such program %s", name)
	}
	delete(s.programs, name)
	delete(s.modTimes, name)
	return nil
}
