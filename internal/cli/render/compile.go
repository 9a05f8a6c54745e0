package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/trebuchet-org/katapult/internal/usecase"
)

// CompileRenderer renders compile results.
type CompileRenderer struct {
	out io.Writer
}

// NewCompileRenderer creates a compile renderer
func NewCompileRenderer(out io.Writer) *CompileRenderer {
	return &CompileRenderer{out: out}
}

// RenderCompileResult prints per-file outcomes and a summary.
func (r *CompileRenderer) RenderCompileResult(result *usecase.CompileResult) error {
	fmt.Fprintf(r.out, "Compiling with solc %s\n\n", result.SolcVersion)

	for _, file := range result.Files {
		if file.Err != nil {
			color.New(color.FgRed).Fprintf(r.out, "  ✗ %s: %v\n", file.Path, file.Err)
			continue
		}
		color.New(color.FgGreen).Fprintf(r.out, "  ✓ %s (%s)\n", file.Path, strings.Join(file.Contracts, ", "))
	}

	failed := result.Failed()
	fmt.Fprintf(r.out, "\nCompiled %d/%d files\n", len(result.Files)-failed, len(result.Files))
	return nil
}
