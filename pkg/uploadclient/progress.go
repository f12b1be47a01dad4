package uploadclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	progressBarWidth     = 32
	progressRenderPeriod = 120 * time.Millisecond
)

// progressBar рисует ASCII-индикатор отправки одного файла.
type progressBar struct {
	out           io.Writer
	prefix        string
	total         int64
	current       int64
	lastRender    time.Time
	lastLineWidth int
	finished      bool
	mu            sync.Mutex
}

func newProgressBar(out io.Writer, prefix string, total int64) *progressBar {
	return &progressBar{
		out:    out,
		prefix: prefix,
		total:  total,
	}
}

func fmtPrefix(name string, idx, count int) string {
	return fmt.Sprintf("Uploading %s (%d/%d)", name, idx+1, count)
}

func (p *progressBar) AddBytes(n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.mu.Lock()
	if p.finished {
		p.mu.Unlock()
		return
	}
	p.current += n
	p.mu.Unlock()
	p.render(false, "")
}

func (p *progressBar) render(force bool, suffix string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.finished && !force {
		p.mu.Unlock()
		return
	}
	now := time.Now()
	if !force && now.Sub(p.lastRender) < progressRenderPeriod {
		p.mu.Unlock()
		return
	}

	line := p.lineLocked() + suffix
	padding := p.paddingLocked(len(line))
	p.lastRender = now
	p.mu.Unlock()

	fmt.Fprintf(p.out, "\r%s%s", line, padding)
}

// paddingLocked затирает хвост предыдущей, более длинной строки.
func (p *progressBar) paddingLocked(width int) string {
	prev := p.lastLineWidth
	p.lastLineWidth = width
	if prev > width {
		return strings.Repeat(" ", prev-width)
	}
	return ""
}

func (p *progressBar) lineLocked() string {
	var builder strings.Builder
	builder.Grow(len(p.prefix) + 64)
	builder.WriteString(p.prefix)
	builder.WriteByte(' ')

	if p.total <= 0 {
		builder.WriteString(humanize.IBytes(uint64(p.current)))
		builder.WriteString(" sent")
		return builder.String()
	}

	ratio := float64(p.current) / float64(p.total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(progressBarWidth) + 0.5)
	builder.WriteByte('[')
	builder.WriteString(strings.Repeat("=", filled))
	builder.WriteString(strings.Repeat(" ", progressBarWidth-filled))
	builder.WriteString("] ")
	builder.WriteString(fmt.Sprintf("%3d%% ", int(ratio*100+0.5)))
	builder.WriteString(humanize.IBytes(uint64(p.current)))
	builder.WriteByte('/')
	builder.WriteString(humanize.IBytes(uint64(p.total)))

	return builder.String()
}

func (p *progressBar) Finish() {
	p.complete(nil)
}

func (p *progressBar) Fail(err error) {
	if err == nil {
		err = fmt.Errorf("failed")
	}
	p.complete(err)
}

func (p *progressBar) complete(err error) {
	if p == nil {
		return
	}

	p.mu.Lock()
	if p.finished {
		p.mu.Unlock()
		return
	}
	p.finished = true
	line := p.lineLocked()
	if err != nil {
		line += fmt.Sprintf(" ✗ %v", err)
	} else {
		line += " ✓"
	}
	padding := p.paddingLocked(len(line))
	p.mu.Unlock()

	fmt.Fprintf(p.out, "\r%s%s\n", line, padding)
}

type progressWriter struct {
	bar *progressBar
}

func (w progressWriter) Write(p []byte) (int, error) {
	if len(p) > 0 && w.bar != nil {
		w.bar.AddBytes(int64(len(p)))
	}
	return len(p), nil
}
