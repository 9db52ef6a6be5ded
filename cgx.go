// Package cgx formats and lints CGX single-file components: hybrid
// documents mixing an HTML-like template tree with one embedded Python
// script block. Python formatting and checking is delegated to the external
// ruff executable; everything outside the transformed regions is preserved
// byte-for-byte.
//
// The content-based entry points (FormatContent, LintContent) never fail:
// malformed documents come back unchanged and tool failures degrade to
// synthetic diagnostics, which makes them safe for editor integrations. The
// file-based entry points propagate errors so command-line callers can exit
// non-zero.
package cgx

import (
	"github.com/fork-tongue/ruff-cgx/internal/config"
	"github.com/fork-tongue/ruff-cgx/internal/render"
	"github.com/fork-tongue/ruff-cgx/internal/ruff"
)

// Extension is the file extension of CGX single-file components.
const Extension = ".cgx"

// Tool is the pipeline context: resolved configuration plus the external
// ruff collaborator. A Tool is immutable after construction and safe for
// concurrent use; callers needing a different ruff executable construct a
// new Tool instead of mutating shared state.
type Tool struct {
	cfg      config.Config
	runner   ruff.Runner
	renderer *render.Renderer
}

// New creates a Tool for the given configuration, resolving the ruff
// executable with the standard precedence (configured override, then the
// RUFF_COMMAND environment variable, then "ruff" on the search path).
func New(cfg config.Config) *Tool {
	return NewWithRunner(cfg, ruff.NewCommandRunner(cfg.RuffCommand))
}

// NewWithRunner creates a Tool with an explicit ruff collaborator. Tests
// use this to substitute a scripted runner.
func NewWithRunner(cfg config.Config, runner ruff.Runner) *Tool {
	if cfg.LineLength <= 0 {
		cfg.LineLength = config.DefaultLineLength
	}
	return &Tool{
		cfg:      cfg,
		runner:   runner,
		renderer: render.New(runner, cfg.LineLength),
	}
}

// Config returns the Tool's configuration.
func (t *Tool) Config() config.Config {
	return t.cfg
}
