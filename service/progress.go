package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/ludo-technologies/treesim/domain"
)

// ProgressReporterImpl reports comparison progress through a progress bar
// when attached to a terminal
type ProgressReporterImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	bar         *progressbar.ProgressBar
	interactive bool
}

// NewProgressReporter creates a progress reporter writing to stderr
func NewProgressReporter() *ProgressReporterImpl {
	return &ProgressReporterImpl{
		writer:      os.Stderr,
		interactive: IsInteractiveEnvironment(),
	}
}

// StartProgress starts progress reporting for the given number of pairs
func (p *ProgressReporterImpl) StartProgress(totalPairs int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.interactive || totalPairs <= 1 {
		return
	}
	p.bar = p.createBar("Comparing", totalPairs)
}

// UpdateProgress updates the progress with the pair being compared
func (p *ProgressReporterImpl) UpdateProgress(currentPair string, processed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		return
	}
	p.bar.Describe("Comparing " + filepath.Base(currentPair))
	_ = p.bar.Set(processed)
}

// FinishProgress finishes progress reporting
func (p *ProgressReporterImpl) FinishProgress() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

// SetWriter sets the output writer for progress bars
func (p *ProgressReporterImpl) SetWriter(writer io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.writer = writer
	if file, ok := writer.(*os.File); ok {
		p.interactive = term.IsTerminal(int(file.Fd()))
	} else {
		p.interactive = false
	}
}

func (p *ProgressReporterImpl) createBar(description string, max int) *progressbar.ProgressBar {
	writer := p.writer
	if writer == nil {
		writer = io.Discard
	}

	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(writer)
		}),
	)
}

// IsInteractiveEnvironment reports whether stderr is attached to a terminal
func IsInteractiveEnvironment() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// NoOpProgressReporter is a progress reporter that does nothing
type NoOpProgressReporter struct{}

// NewNoOpProgressReporter creates a no-op progress reporter
func NewNoOpProgressReporter() *NoOpProgressReporter {
	return &NoOpProgressReporter{}
}

func (n *NoOpProgressReporter) StartProgress(totalPairs int)                            {}
func (n *NoOpProgressReporter) UpdateProgress(currentPair string, processed, total int) {}
func (n *NoOpProgressReporter) FinishProgress()                                         {}

// CreateProgressReporter returns a reporter appropriate for the environment
func CreateProgressReporter(noProgress bool) domain.ProgressReporter {
	if noProgress || !IsInteractiveEnvironment() {
		return NewNoOpProgressReporter()
	}
	return NewProgressReporter()
}
