package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"depsort/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "depsort [flags] [CWD...]",
	Short: "Sort and format Cargo.toml dependency tables",
	Long: `depsort keeps the dependency tables of Cargo.toml manifests sorted
and consistently formatted, preserving comments and layout.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSort,
}

// main registers subcommands and flags and executes the root command.
// Any failure (including an unsorted manifest under --check) exits with 1.
func main() {
	rootCmd.SetArgs(stripSubcommand(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file ('-' for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupColor(cmd)
	}
}

// stripSubcommand drops the leading "sort" (or legacy "sort-fix") that cargo
// passes when the binary runs as `cargo sort`.
func stripSubcommand(args []string) []string {
	if len(args) > 0 && (args[0] == "sort" || args[0] == "sort-fix") {
		return args[1:]
	}
	return args
}

func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "auto", "":
		color.NoColor = !isTerminal(os.Stdout) || os.Getenv("NO_COLOR") != ""
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
