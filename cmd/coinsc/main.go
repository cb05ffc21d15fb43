/*
Coinsc compiles a single Coins source file: lexing, parsing, semantic
analysis, and (if no errors occurred) code generation into a Python-like
target file, per spec.md §6.

Usage:

	coinsc [flags] SOURCE

The flags are:

	-v, --version
		Give the current version of coinsc and then exit.

	-c, --config FILE
		Use the provided TOML configuration file to control output paths and
		target dialect. Defaults to built-in defaults if not given.

	-r, --repl
		Start an interactive session instead of compiling a file. Each
		submitted block is lexed, parsed, and semantically analyzed as it is
		entered and any diagnostics are printed immediately.

	-d, --direct
		Force reading REPL input directly from stdin instead of using GNU
		readline based routines, even if launched in a tty.

Artifacts are written beneath the configured output directory: the
generated target file, an HTML symbol-table report, and two log files
(errors.log and semantic_errors.log).
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/coins"
	"github.com/dekarrin/coins/internal/coins/coinserr"
	"github.com/dekarrin/coins/internal/coins/config"
	"github.com/dekarrin/coins/internal/coins/report"
	"github.com/dekarrin/coins/internal/input"
	"github.com/dekarrin/coins/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates bad flags or missing arguments.
	ExitUsageError

	// ExitConfigError indicates the configuration file could not be loaded.
	ExitConfigError

	// ExitIOError indicates a source file or artifact could not be read or
	// written.
	ExitIOError

	// ExitCompileError indicates the source compiled with errors (codegen
	// did not run).
	ExitCompileError

	// ExitInitError indicates the REPL's input reader could not be
	// initialized.
	ExitInitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	configFile  *string = pflag.StringP("config", "c", "", "TOML configuration file controlling output paths and target dialect")
	replMode    *bool   = pflag.BoolP("repl", "r", false, "Start an interactive session instead of compiling a file")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force reading REPL input directly from stdin instead of GNU readline")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitConfigError
			return
		}
		cfg = loaded
	}

	if *replMode {
		runREPL()
		return
	}

	if pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: no source file given")
		returnCode = ExitUsageError
		return
	}

	runCompile(cfg, pflag.Arg(0))
}

func runCompile(cfg config.Config, srcPath string) {
	srcBytes, err := os.ReadFile(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitIOError
		return
	}

	res := coins.Compile(string(srcBytes))

	if err := writeArtifacts(cfg, res); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitIOError
		return
	}

	if res.Errored() {
		fmt.Fprintf(os.Stderr, "compilation failed with %d error(s)\n",
			len(res.LexErrors)+len(res.SyntaxErrors)+len(res.SemanticErrors))
		returnCode = ExitCompileError
		return
	}

	fmt.Printf("wrote %s\n", artifactPath(cfg, cfg.Output.GeneratedFileName))
}

// writeArtifacts writes every artifact spec.md §6.1 assigns to the driver:
// the generated code (if codegen ran), the HTML symbol table report, and
// the two diagnostic logs.
func writeArtifacts(cfg config.Config, res coins.Result) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if res.CodegenRan {
		path := artifactPath(cfg, cfg.Output.GeneratedFileName)
		if err := os.WriteFile(path, []byte(res.Generated), 0o644); err != nil {
			return fmt.Errorf("write generated code: %w", err)
		}
	}

	reportPath := artifactPath(cfg, cfg.Output.SymbolTableReportName)
	reportFile, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("create symbol table report: %w", err)
	}
	defer reportFile.Close()
	if err := report.WriteSymbolTableHTML(reportFile, res.Syms); err != nil {
		return fmt.Errorf("write symbol table report: %w", err)
	}

	lexAndSyn := append(append([]coinserr.Diagnostic{}, res.LexErrors...), res.SyntaxErrors...)
	if err := writeLog(artifactPath(cfg, cfg.Logging.ErrorsLog), lexAndSyn); err != nil {
		return err
	}

	semAndWarn := append(append([]coinserr.Diagnostic{}, res.SemanticErrors...), res.Warnings...)
	if err := writeLog(artifactPath(cfg, cfg.Logging.SemanticLog), semAndWarn); err != nil {
		return err
	}

	return nil
}

func writeLog(path string, diags []coinserr.Diagnostic) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := report.WriteErrorLog(f, diags); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func artifactPath(cfg config.Config, name string) string {
	return cfg.Output.Dir + string(os.PathSeparator) + name
}

// runREPL starts an interactive session that lexes, parses, and
// semantically analyzes each line submitted as it is entered, printing
// diagnostics immediately and never writing artifacts to disk.
func runREPL() {
	reader, err := newReader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer reader.Close()

	fmt.Println("coins REPL - one statement per line; Ctrl-D to quit")

	for {
		line, err := reader.ReadCommand()
		if err != nil {
			return
		}

		res := coins.Compile(line)
		printDiagnostics("lex", res.LexErrors)
		printDiagnostics("syntax", res.SyntaxErrors)
		printDiagnostics("semantic", res.SemanticErrors)
		printDiagnostics("warning", res.Warnings)

		if res.CodegenRan {
			fmt.Println(res.Generated)
		}
	}
}

func printDiagnostics(phase string, diags []coinserr.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", phase, d.Error())
	}
}

func newReader() (commandReader, error) {
	if *forceDirect {
		return input.NewDirectReader(os.Stdin), nil
	}
	return input.NewInteractiveReader()
}

// commandReader is the minimal surface runREPL needs from either of
// internal/input's two reader implementations.
type commandReader interface {
	ReadCommand() (string, error)
	Close() error
}
