package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driving"
)

// Ensure consoleProgress implements the interface.
var _ driving.ProgressSink = (*consoleProgress)(nil)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// consoleProgress prints pipeline progress to the terminal. Events
// arrive from worker goroutines, so all writes are serialised.
type consoleProgress struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsoleProgress(out io.Writer) *consoleProgress {
	return &consoleProgress{out: out}
}

func (p *consoleProgress) ScanComplete(found int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "Found %d documents\n", found)
}

func (p *consoleProgress) FileExtracted(index, total int, doc domain.ExtractedDocument) {
	p.mu.Lock()
	defer p.mu.Unlock()
	counter := dimStyle.Render(fmt.Sprintf("[%d/%d]", index+1, total))
	if doc.Status == domain.StatusOK {
		fmt.Fprintf(p.out, "%s %s %s\n", counter, okStyle.Render("✓"), doc.RelPath)
		return
	}
	fmt.Fprintf(p.out, "%s %s %s (%s)\n", counter, skipStyle.Render("-"), doc.RelPath, doc.Status)
}

func (p *consoleProgress) BatchComplete(batch, batches, docsProcessed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "Evaluated batch %d/%d (%d documents)\n", batch, batches, docsProcessed)
}
