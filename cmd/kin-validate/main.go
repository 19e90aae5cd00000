// Package main implements the kin-validate CLI tool.
// It validates family-tree dataset exports from files or stdin.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	kv "github.com/gokin/validator"
	"github.com/gokin/validator/engine"
)

const (
	version = "0.1.0"
	usage   = `kin-validate - Family-Tree Dataset Validator

Usage:
  kin-validate [options] <file>...
  kin-validate [options] -           (read from stdin)
  cat tree.json | kin-validate -     (pipe input)

Examples:
  kin-validate family-tree.json
  kin-validate -output json family-tree.json
  kin-validate -quick *.json
  cat export.json | kin-validate -

Options:
`
)

// OutputFormat specifies the output format.
type OutputFormat string

// Output format constants.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// Config holds CLI configuration
type Config struct {
	Output      OutputFormat
	Quick       bool
	MaxErrors   int
	Quiet       bool
	ShowVersion bool
	Help        bool
	Files       []string
}

// ValidationOutput represents the JSON output structure
type ValidationOutput struct {
	Document string        `json:"document"`
	Valid    bool          `json:"valid"`
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	Issues   []IssueOutput `json:"issues,omitempty"`
	Duration string        `json:"duration"`
}

// IssueOutput represents a single issue in JSON output
type IssueOutput struct {
	Severity    string `json:"severity"`
	Code        string `json:"code"`
	Diagnostics string `json:"diagnostics"`
	Path        string `json:"path,omitempty"`
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("kin-validate v%s\n", version)
		os.Exit(0)
	}

	if config.Help || len(config.Files) == 0 {
		flag.Usage()
		os.Exit(0)
	}

	exitCode := run(config)
	os.Exit(exitCode)
}

func parseFlags() *Config {
	config := &Config{
		Output: OutputText,
	}

	var output string

	flag.StringVar(&output, "output", "text", "Output format: text, json")
	flag.BoolVar(&config.Quick, "quick", false, "Structural screening only (skip referential checks)")
	flag.IntVar(&config.MaxErrors, "max-errors", 0, "Stop after this many errors (0 = unlimited)")
	flag.BoolVar(&config.Quiet, "quiet", false, "Only show errors and warnings")
	flag.BoolVar(&config.ShowVersion, "v", false, "Show version")
	flag.BoolVar(&config.Help, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	switch strings.ToLower(output) {
	case "json":
		config.Output = OutputJSON
	default:
		config.Output = OutputText
	}

	// Remaining arguments are files
	config.Files = flag.Args()

	return config
}

func run(config *Config) int {
	v, err := engine.New(context.Background(), kv.WithMaxErrors(config.MaxErrors))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to initialize validator: %v\n", err)
		return 1
	}

	hasErrors := false
	outputs := make([]ValidationOutput, 0, len(config.Files))

	for _, file := range config.Files {
		if file == "-" {
			data, readErr := io.ReadAll(os.Stdin)
			if readErr != nil {
				fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", readErr)
				hasErrors = true
				continue
			}
			output, fileHasErrors := validateData(v, data, "stdin", config)
			outputs = append(outputs, output)
			if fileHasErrors {
				hasErrors = true
			}
			continue
		}

		// Handle glob patterns
		matches, globErr := filepath.Glob(file)
		if globErr != nil {
			fmt.Fprintf(os.Stderr, "Error with pattern '%s': %v\n", file, globErr)
			hasErrors = true
			continue
		}

		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "No files match pattern: %s\n", file)
			hasErrors = true
			continue
		}

		for _, match := range matches {
			output, fileHasErrors := validateFile(v, match, config)
			outputs = append(outputs, output)
			if fileHasErrors {
				hasErrors = true
			}
		}
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Println(string(jsonOutput))
	}

	if hasErrors {
		return 1
	}
	return 0
}

func validateFile(v *engine.Validator, path string, config *Config) (ValidationOutput, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		output := ValidationOutput{
			Document: path,
			Valid:    false,
			Errors:   1,
			Issues: []IssueOutput{{
				Severity:    "error",
				Code:        "processing",
				Diagnostics: fmt.Sprintf("Failed to read file: %v", err),
			}},
		}
		if config.Output == OutputText {
			fmt.Printf("Error reading %s: %v\n", path, err)
		}
		return output, true
	}

	return validateData(v, data, path, config)
}

func validateData(v *engine.Validator, data []byte, name string, config *Config) (ValidationOutput, bool) {
	ctx := context.Background()
	startTime := time.Now()

	var result *kv.Result
	var err error
	if config.Quick {
		result, err = v.QuickValidate(ctx, data)
	} else {
		result, err = v.Validate(ctx, data)
	}
	duration := time.Since(startTime)

	if err != nil {
		output := ValidationOutput{
			Document: name,
			Valid:    false,
			Errors:   1,
			Duration: duration.String(),
			Issues: []IssueOutput{{
				Severity:    "error",
				Code:        "processing",
				Diagnostics: fmt.Sprintf("Validation failed: %v", err),
			}},
		}
		if config.Output == OutputText {
			fmt.Printf("Error validating %s: %v\n", name, err)
		}
		return output, true
	}
	defer result.Release()

	output := ValidationOutput{
		Document: name,
		Valid:    !result.HasErrors(),
		Errors:   result.ErrorCount(),
		Warnings: len(result.Warnings()),
		Duration: duration.Round(time.Microsecond).String(),
	}

	for _, iss := range result.Issues {
		output.Issues = append(output.Issues, IssueOutput{
			Severity:    string(iss.Severity),
			Code:        string(iss.Code),
			Diagnostics: iss.Diagnostics,
			Path:        iss.Path,
		})
	}

	if config.Output == OutputText {
		printTextResult(name, result, duration, config)
	}

	return output, result.HasErrors()
}

func printTextResult(name string, result *kv.Result, duration time.Duration, config *Config) {
	status := "VALID"
	if result.HasErrors() {
		status = "INVALID"
	}

	fmt.Printf("== %s ==\n", name)
	fmt.Printf("Status: %s\n", status)
	fmt.Printf("Errors: %d, Warnings: %d\n", result.ErrorCount(), len(result.Warnings()))
	fmt.Printf("Duration: %s\n", duration.Round(time.Microsecond))

	if len(result.Issues) > 0 {
		fmt.Println("\nIssues:")
		for _, iss := range result.Issues {
			if config.Quiet && iss.Severity == kv.SeverityInformation {
				continue
			}

			location := ""
			if iss.Path != "" {
				location = fmt.Sprintf(" @ %s", iss.Path)
			}

			fmt.Printf("  %s [%s] %s%s\n", severityLabel(iss.Severity), iss.Code, iss.Diagnostics, location)
		}
	}

	fmt.Println()
}

func severityLabel(severity kv.IssueSeverity) string {
	switch severity {
	case kv.SeverityError, kv.SeverityFatal:
		return "ERROR"
	case kv.SeverityWarning:
		return "WARN "
	case kv.SeverityInformation:
		return "INFO "
	default:
		return "     "
	}
}
