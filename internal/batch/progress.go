package batch

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// ConsoleProgress renders a single-line progress bar with elapsed and
// estimated remaining time. It is safe under the runner's serialization
// guarantee and keeps no global state.
type ConsoleProgress struct {
	Out io.Writer

	total  int
	start  time.Time
	failed int
}

func (p *ConsoleProgress) Start(total int) {
	p.total = total
	p.start = time.Now()
	p.failed = 0
}

func (p *ConsoleProgress) FileDone(done int, r Result) {
	if r.Err != nil {
		p.failed++
	}
	elapsed := time.Since(p.start)
	avg := elapsed / time.Duration(done)
	remaining := avg * time.Duration(p.total-done)

	frac := float64(done) / float64(p.total)
	filled := int(frac * 30)
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", 30-filled)

	fmt.Fprintf(p.Out, "\r[%s] %d/%d %s | elapsed %s | remaining %s",
		bar, done, p.total, filepath.Base(r.Path),
		elapsed.Round(time.Second), remaining.Round(time.Second))
}

func (p *ConsoleProgress) Finish() {
	fmt.Fprintf(p.Out, "\ndone: %d processed, %d failed in %s\n",
		p.total-p.failed, p.failed, time.Since(p.start).Round(time.Second))
}
