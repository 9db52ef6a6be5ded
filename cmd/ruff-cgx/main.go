// Command ruff-cgx formats and lints CGX single-file components by running
// ruff against the embedded Python and normalizing the surrounding markup.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fork-tongue/ruff-cgx/internal/config"
	"github.com/fork-tongue/ruff-cgx/internal/log"
	"github.com/fork-tongue/ruff-cgx/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          "ruff-cgx",
	Short:        "Format and lint CGX single-file components",
	Long:         "ruff-cgx formats the template markup of CGX files and delegates the embedded Python to ruff, keeping line numbers intact for diagnostics.",
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version.GetVersion()

	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a ruff-cgx config file")
	rootCmd.PersistentFlags().IntP("jobs", "j", 4, "number of files to process concurrently")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves configuration for a command: an explicit --config path
// wins, otherwise config files are searched upward from the working
// directory. A malformed config file aborts the run.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
		log.SetLevel(log.LevelDebug)
	}

	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		return config.Load(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	return config.Search(cwd)
}

func jobsFlag(cmd *cobra.Command) int {
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil || jobs < 1 {
		return 1
	}
	return jobs
}
