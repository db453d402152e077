package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner abstracts converter process execution to enable testing
// without a real wkhtmltopdf binary.
type CommandRunner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) (stdout []byte, stderr string, err error)
}

// execRunner implements CommandRunner using os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin string, name string, args ...string) ([]byte, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.String(), err
}

// WkhtmltopdfRenderer converts HTML to PDF by invoking wkhtmltopdf once per
// request, HTML on stdin and PDF on stdout. There is no persistent engine:
// each request pays the process-spawn cost but shares no state with any other,
// so there is nothing to leak and nothing for a fault to take down.
type WkhtmltopdfRenderer struct {
	bin    string
	runner CommandRunner
}

var _ Renderer = (*WkhtmltopdfRenderer)(nil)

// NewWkhtmltopdfRenderer creates a renderer invoking the given binary
// ("wkhtmltopdf" when empty).
func NewWkhtmltopdfRenderer(bin string) *WkhtmltopdfRenderer {
	if bin == "" {
		bin = "wkhtmltopdf"
	}
	return &WkhtmltopdfRenderer{bin: bin, runner: execRunner{}}
}

// Render spawns one converter process for this request.
func (r *WkhtmltopdfRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, stderr, err := r.runner.Run(ctx, html, r.bin, r.args()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, strings.TrimSpace(stderr), err)
	}
	return out, nil
}

// args builds the converter command line for the shared page geometry.
// "-" twice selects stdin input and stdout output.
func (r *WkhtmltopdfRenderer) args() []string {
	margin := fmt.Sprintf("%dpx", marginPixels)
	return []string{
		"--quiet",
		"--encoding", "utf-8",
		"--page-size", "A4",
		"--margin-top", margin,
		"--margin-bottom", margin,
		"--margin-left", margin,
		"--margin-right", margin,
		"--background",
		"--disable-smart-shrinking",
		"-", "-",
	}
}

// Close is a no-op: every process already exited with its request.
func (r *WkhtmltopdfRenderer) Close() error { return nil }
