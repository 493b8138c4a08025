package expect

import (
	"sort"
	"sync"

	"github.com/sirkon/typeexpect/internal/exprules"
)

// Failure is the engine's sole externally visible output unit: a rule code,
// a byte span in the file under test, and a human-readable message.
type Failure struct {
	Rule    exprules.Rule
	Offset  int
	Length  int
	Message string
}

// Diagnostic is a checker-reported problem. File may differ from the file
// under test, e.g. for errors in a referenced declaration file; Line is
// zero-based and meaningful only for same-file diagnostics.
type Diagnostic struct {
	File    string
	Offset  int
	Length  int
	Line    int
	Message string
}

// Collector accumulates failures keyed by file. Safe for hosts that verify
// multiple files concurrently.
type Collector struct {
	mu    sync.Mutex
	files map[string][]Failure
	total int
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{files: make(map[string][]Failure)}
}

// Add appends failures of one file. Files with no failures are recorded
// too, so Files reflects everything that was verified.
func (c *Collector) Add(file string, failures ...Failure) {
	c.mu.Lock()
	c.files[file] = append(c.files[file], failures...)
	c.total += len(failures)
	c.mu.Unlock()
}

// File returns a snapshot of the failures collected for the file.
func (c *Collector) File(name string) []Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Failure, len(c.files[name]))
	copy(out, c.files[name])
	return out
}

// Files returns the names of all recorded files in order.
func (c *Collector) Files() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.files))
	for name := range c.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Total returns the overall failure count.
func (c *Collector) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}
