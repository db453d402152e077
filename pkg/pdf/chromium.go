package pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ChromiumRenderer renders HTML to PDF through one long-lived headless
// Chromium instance. Every Render call opens its own ephemeral page, so a
// slow or hung page cannot block other in-flight requests; the page is closed
// on every return path to keep the shared instance from leaking memory.
type ChromiumRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

var _ Renderer = (*ChromiumRenderer)(nil)

// NewChromiumRenderer launches the browser immediately so the process fails
// at startup, not on the first export, when the engine cannot start.
func NewChromiumRenderer(browserBin string, timeout time.Duration) (*ChromiumRenderer, error) {
	l := launcher.New()

	// Use a pre-installed browser if specified (Docker/containerized environments)
	if browserBin != "" {
		l = l.Bin(browserBin).NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineStart, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineStart, err)
	}

	return &ChromiumRenderer{browser: browser, timeout: timeout}, nil
}

// Render writes the HTML to a temp file, loads it in a fresh page, waits for
// the load to settle and extracts the PDF.
func (r *ChromiumRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "applytrack-*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Bound the wait by the caller's deadline when it is tighter than ours.
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
		Scale:           floatPtr(1), // keep literal font sizing, never shrink to fit
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	pdfBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrRender, err)
	}
	return pdfBytes, nil
}

// Close shuts the shared browser instance down.
func (r *ChromiumRenderer) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}
