package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/poiesic/subnav/core"
)

// Monitor provides hooks to observe a pipeline run.
// Hooks are called from the goroutine running the pipeline, one candidate at a time.
type Monitor interface {
	Start(total int)
	Skipped(candidate core.Candidate)
	Stored(candidate core.Candidate, subsidy *core.Subsidy)
	Failed(candidate core.Candidate, err error)
	Finish(result *Result)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ int) {}
func (n *noopMonitor) Skipped(_ core.Candidate) {}
func (n *noopMonitor) Stored(_ core.Candidate, _ *core.Subsidy) {}
func (n *noopMonitor) Failed(_ core.Candidate, _ error) {}
func (n *noopMonitor) Finish(_ *Result) {}

// ProgressMonitor writes one line per candidate and a closing summary.
type ProgressMonitor struct {
	writer    io.Writer
	total     int
	current   int
	startTime time.Time
	mu        sync.Mutex
}

var _ Monitor = (*ProgressMonitor)(nil)

// NewProgressMonitor creates a progress monitor writing to w (typically os.Stderr).
func NewProgressMonitor(w io.Writer) *ProgressMonitor {
	return &ProgressMonitor{writer: w}
}

func (p *ProgressMonitor) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	p.current = 0
	p.startTime = time.Now()
}

func (p *ProgressMonitor) Skipped(c core.Candidate) {
	p.step("skip", c.Name, "already stored")
}

func (p *ProgressMonitor) Stored(c core.Candidate, s *core.Subsidy) {
	p.step("ok", c.Name, s.ID)
}

func (p *ProgressMonitor) Failed(c core.Candidate, err error) {
	p.step("fail", c.Name, err.Error())
}

func (p *ProgressMonitor) Finish(r *Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.writer, "Done in %s: %d stored, %d skipped, %d failed\n",
		time.Since(p.startTime).Round(time.Millisecond), len(r.Created), len(r.Skipped), len(r.Failures))
}

func (p *ProgressMonitor) step(status, name, detail string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current++
	fmt.Fprintf(p.writer, "[%d/%d] %-4s %s (%s)\n", p.current, p.total, status, name, detail)
}
