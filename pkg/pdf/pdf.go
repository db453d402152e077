package pdf

import (
	"context"
	"errors"
)

// Sentinel errors for rendering failures.
var (
	ErrEngineStart = errors.New("failed to start rendering engine")
	ErrPageCreate  = errors.New("failed to create browser page")
	ErrPageLoad    = errors.New("failed to load page")
	ErrRender      = errors.New("PDF rendering failed")
)

// Renderer converts a complete HTML document into PDF bytes.
//
// Implementations must be safe for concurrent use: each Render call gets its
// own isolated execution context (a browser page, or a converter process), so
// concurrent requests cannot corrupt each other's output. Close releases any
// long-lived engine resources and must be called at process shutdown.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// Page geometry shared by all renderer strategies: A4 with 30px margins,
// backgrounds printed, no font auto-shrinking.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginPixels      = 30
	pixelsPerInch     = 96
	marginInches      = float64(marginPixels) / pixelsPerInch
)

func floatPtr(f float64) *float64 { return &f }
