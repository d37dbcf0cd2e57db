package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn means the header lacks a coordinate column.
	ErrMissingColumn = errors.New("missing coordinate column")

	// ErrInvalidCoordinate means a coordinate cell is neither numeric nor a
	// recognised missing-value token.
	ErrInvalidCoordinate = errors.New("invalid coordinate value")

	// ErrNoRecords means no row survived cleaning.
	ErrNoRecords = errors.New("no records within bounds")

	// ErrNoDisplay means there is no display backend to show the figure on.
	ErrNoDisplay = errors.New("no display available")
)

// Render stages reported on RenderError.
const (
	StageBackdrop = "backdrop"
	StageChart    = "chart"
	StageDisplay  = "display"
	StageOutput   = "output"
)

// LoadError reports a failure to produce a Dataset. Line is zero when the
// failure is not tied to a specific line.
type LoadError struct {
	Path  string
	Line  int
	Cause error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Cause)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }

// RenderError reports a failure to draw or present the figure.
type RenderError struct {
	Path  string
	Stage string
	Cause error
}

func (e *RenderError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("render %s %s: %v", e.Stage, e.Path, e.Cause)
	}
	return fmt.Sprintf("render %s: %v", e.Stage, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }
