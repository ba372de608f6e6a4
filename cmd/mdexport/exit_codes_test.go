package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/highlight"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no files", ErrNoFiles, ExitIO},
		{"wrapped file not exist", fmt.Errorf("discovering files: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"unknown format", mdexport.ErrUnknownFormat, ExitUsage},
		{"invalid page size", mdexport.ErrInvalidPageSize, ExitUsage},
		{"invalid orientation", mdexport.ErrInvalidOrientation, ExitUsage},
		{"invalid margin", mdexport.ErrInvalidMargin, ExitUsage},
		{"unknown code style", highlight.ErrUnknownStyle, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"bad flags", fmt.Errorf("%w: unknown flag: --nope", ErrUsage), ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"conversion failed", ErrConversionFailed, ExitGeneral},
		{"render error", mdexport.ErrRender, ExitGeneral},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard codes = %d/%d/%d, want 0/1/2", ExitSuccess, ExitGeneral, ExitUsage)
	}
	if ExitIO >= 126 {
		t.Errorf("ExitIO = %d, custom codes must be below 126", ExitIO)
	}
}
