package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cgx "github.com/fork-tongue/ruff-cgx"
)

var formatCmd = &cobra.Command{
	Use:   "format [flags] <file|directory>...",
	Short: "Format CGX files in place",
	Long:  "Rewrite the template markup of CGX files and format the embedded Python with ruff. With --check, report files that would change without writing anything.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFormat,
}

func init() {
	formatCmd.Flags().Bool("check", false, "report files that would be reformatted without writing")
}

func runFormat(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	tool := cgx.New(cfg)
	results, err := tool.FormatPaths(cmd.Context(), args, check, jobsFlag(cmd))
	if err != nil {
		return err
	}

	changed := 0
	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", color.RedString("error"), r.Path, r.Err)
		case r.Changed && check:
			changed++
			fmt.Printf("%s %s\n", color.YellowString("Would reformat:"), r.Path)
		case r.Changed:
			changed++
			fmt.Printf("%s %s\n", color.GreenString("Reformatted:"), r.Path)
		}
	}

	switch {
	case check && changed > 0:
		fmt.Printf("%d file(s) would be reformatted\n", changed)
	case changed > 0:
		fmt.Printf("%d file(s) reformatted\n", changed)
	default:
		fmt.Printf("%d file(s) already formatted\n", len(results))
	}

	if failed > 0 || (check && changed > 0) {
		os.Exit(1)
	}
	return nil
}
