package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/quickprop/quickprop/internal/cli"
	"github.com/quickprop/quickprop/internal/utils"
)

// Command-line flags
var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
	quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
	cleanFlag   = flag.Bool("clean", false, "Delete all generated wrapper files from the specified directories")
	helpFlag    = flag.Bool("help", false, "Show help information")
)

func main() {
	flag.Usage = func() {
		printUsage(os.Stderr)
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	diagnostics := newDiagnostics(*verboseFlag, *quietFlag)
	diagnostics.Section("Quickprop Test Generator")

	if *cleanFlag {
		cleaner := cli.NewCleaner()
		removed, err := cleaner.CleanGeneratedFiles(args)
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			os.Exit(1)
		}

		for _, file := range removed {
			diagnostics.List("%s", file)
		}
		diagnostics.Success("Removed %d generated wrapper file(s)", len(removed))
		return
	}

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		diagnostics.List("Verbose mode: enabled")
	}

	generator := cli.NewGeneratorWithDiagnostics(diagnostics)

	diagnostics.Subsection("Code Generation")
	if err := generator.Generate(args); err != nil {
		diagnostics.Error("Generation failed: %v", err)
		os.Exit(1)
	}

	summary := generator.GetSummary()
	diagnostics.Summary("Generation Complete!", summaryStats(summary))

	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}

	diagnostics.Success("Property wrappers are ready; run 'go test' to execute them")
}

// printUsage writes the full usage text, including directive examples.
func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
	fmt.Fprintf(w, "Quickprop Property Test Generator\n")
	fmt.Fprintf(w, "Recursively scans directories for Go functions with quickprop:: directives and\n")
	fmt.Fprintf(w, "generates property-based test wrappers for them.\n\n")
	fmt.Fprintf(w, "Options:\n")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
	fmt.Fprintf(w, "\nArguments:\n")
	fmt.Fprintf(w, "  directory-paths    One or more directories to scan for annotated Go files\n")
	fmt.Fprintf(w, "                     Supports Go-style patterns like './...' for recursive scanning\n")
	fmt.Fprintf(w, "\nDirectives:\n")
	fmt.Fprintf(w, "  //quickprop::pool                  Explore the property on a dedicated worker goroutine\n")
	fmt.Fprintf(w, "  //quickprop::single                Explore the property inline on the test goroutine\n")
	fmt.Fprintf(w, "  //quickprop::pool(workers = 4)     Options are forwarded verbatim to the runtime marker\n")
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  %s ./...                           # Scan everything recursively\n", os.Args[0])
	fmt.Fprintf(w, "  %s ./internal/...                  # Scan internal directory recursively\n", os.Args[0])
	fmt.Fprintf(w, "  %s --verbose ./...                 # Enable detailed output\n", os.Args[0])
	fmt.Fprintf(w, "  %s --clean ./...                   # Delete all generated wrapper files\n", os.Args[0])
}

// newDiagnostics selects the diagnostic level from the verbosity flags.
// Quiet wins when both are set.
func newDiagnostics(verbose, quiet bool) *utils.DiagnosticSystem {
	switch {
	case quiet:
		return utils.NewQuietDiagnostics()
	case verbose:
		return utils.NewVerboseDiagnostics()
	default:
		return utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
}

// summaryStats flattens a run summary into the name/value block the
// diagnostics print after a successful run.
func summaryStats(summary cli.Summary) map[string]interface{} {
	return map[string]interface{}{
		"Packages scanned":   summary.PackagesScanned,
		"Wrapper files":      summary.PackagesGenerated,
		"Tests generated":    summary.TestsGenerated,
		"Pool flavor":        summary.PoolTests,
		"Single flavor":      summary.SingleTests,
		"Stale files pruned": len(summary.StaleFilesRemoved),
	}
}
