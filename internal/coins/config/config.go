// Package config loads the TOML compiler configuration file that the
// cmd/coinsc driver and the compile-job HTTP service both read to decide
// where artifacts are written and what the generated code's target
// dialect is named, decoded with toml.DecodeFile the way the teacher's
// manifest-loading code does.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the top-level decoded shape of a coins.toml configuration file.
type Config struct {
	Output  OutputConfig  `toml:"output"`
	Logging LoggingConfig `toml:"logging"`
	Target  TargetConfig  `toml:"target"`
}

// OutputConfig controls where compilation artifacts are written.
type OutputConfig struct {
	// Dir is the directory every artifact (AST dump, symbol table report,
	// generated code) is written beneath. Defaults to "." if empty.
	Dir string `toml:"dir"`

	// GeneratedFileName is the file name the generated target source is
	// written to within Dir.
	GeneratedFileName string `toml:"generated_file_name"`

	// SymbolTableReportName is the file name the HTML symbol-table report
	// is written to within Dir.
	SymbolTableReportName string `toml:"symbol_table_report_name"`
}

// LoggingConfig names the log files the driver appends diagnostics to, per
// spec.md §6.1's "errors.log, semantic_errors.log".
type LoggingConfig struct {
	ErrorsLog   string `toml:"errors_log"`
	SemanticLog string `toml:"semantic_log"`
}

// TargetConfig names the dialect the code generator emits, reserved for a
// future second backend; only "python-like" (the spec's default dynamically
// typed target) is implemented.
type TargetConfig struct {
	Dialect string `toml:"dialect"`
}

// Default returns the configuration used when no coins.toml is present.
func Default() Config {
	return Config{
		Output: OutputConfig{
			Dir:                   ".",
			GeneratedFileName:     "out.py",
			SymbolTableReportName: "symbols.html",
		},
		Logging: LoggingConfig{
			ErrorsLog:   "errors.log",
			SemanticLog: "semantic_errors.log",
		},
		Target: TargetConfig{Dialect: "python-like"},
	}
}

// LoadFile reads and decodes the TOML configuration at path, filling any
// field left unset in the file with Default's value.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	return cfg, nil
}
