package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cgx "github.com/fork-tongue/ruff-cgx"
	"github.com/fork-tongue/ruff-cgx/internal/diagnostics"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>...",
	Short: "Lint the Python embedded in CGX files",
	Long:  "Run ruff against the script block of each CGX file, with template identifiers treated as defined names. Reported positions refer to the original file.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("fix", false, "apply ruff's safe fixes to the script block")
}

func runCheck(cmd *cobra.Command, args []string) error {
	fix, err := cmd.Flags().GetBool("fix")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	tool := cgx.New(cfg)
	results, err := tool.CheckPaths(cmd.Context(), args, fix, jobsFlag(cmd))
	if err != nil {
		return err
	}

	total := 0
	errors := 0
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", color.RedString("error"), r.Path, r.Err)
			continue
		}
		if r.Changed {
			fmt.Printf("%s %s\n", color.GreenString("Fixed:"), r.Path)
		}
		for _, d := range r.Diagnostics {
			total++
			if d.Severity == diagnostics.SeverityError {
				errors++
			}
			printDiagnostic(r.Path, d)
		}
	}

	if total == 0 && failed == 0 {
		fmt.Println("All checks passed!")
		return nil
	}

	fmt.Printf("Found %d issue(s) in %d file(s)\n", total, len(results))
	if errors > 0 || failed > 0 {
		os.Exit(1)
	}
	return nil
}

// printDiagnostic renders one issue as path:line:col, 1-indexed for humans.
func printDiagnostic(path string, d diagnostics.Diagnostic) {
	code := d.Code
	switch d.Severity {
	case diagnostics.SeverityError:
		code = color.RedString(code)
	case diagnostics.SeverityWarning:
		code = color.YellowString(code)
	}
	fmt.Printf("%s:%d:%d %s %s\n", path, d.Line+1, d.Column+1, code, d.Message)
}
