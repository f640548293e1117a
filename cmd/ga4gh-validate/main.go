// Package main implements the ga4gh-validate CLI tool for validating
// biomedical metadata batches.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	bv "github.com/ga4gh-metadata/validator"
	"github.com/ga4gh-metadata/validator/codec"
	"github.com/ga4gh-metadata/validator/engine"
	"github.com/ga4gh-metadata/validator/prom"
	"github.com/ga4gh-metadata/validator/record"
	"github.com/ga4gh-metadata/validator/vocab"
)

const (
	version = "0.1.0"
	usage   = `ga4gh-validate - biomedical metadata batch validator

Usage:
  ga4gh-validate [options] <file>...
  ga4gh-validate [options] -           (read from stdin)
  cat batch.json | ga4gh-validate -    (pipe input)

Input files contain a JSON array of subject and sample documents, or a
single document.

Examples:
  ga4gh-validate batch.json
  ga4gh-validate -strict -require-timestamps batch.json
  ga4gh-validate -vocab ./vocabularies batch.json
  ga4gh-validate -output json batch.json
  ga4gh-validate -metrics batch.json
  ga4gh-validate -config validate.yaml *.json

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

// Config holds CLI configuration.
type Config struct {
	ConfigFile        string
	Output            OutputFormat
	Strict            bool
	RequireTimestamps bool
	Workers           int
	VocabDir          string
	VocabTimeout      time.Duration
	Metrics           bool
	Quiet             bool
	Verbose           bool
	ShowVersion       bool
	Help              bool
	Files             []string
}

// fileConfig is the YAML configuration file layout. Flags override it.
type fileConfig struct {
	StrictDuplicates    bool   `yaml:"strict_duplicates"`
	RequireTimestamps   bool   `yaml:"require_timestamps"`
	VocabularyTimeoutMs int    `yaml:"vocabulary_timeout_ms"`
	Workers             int    `yaml:"workers"`
	VocabularyDir       string `yaml:"vocabulary_dir"`
}

// BatchOutput is the JSON output structure for one input file.
type BatchOutput struct {
	Source   string         `json:"source"`
	Valid    bool           `json:"valid"`
	Records  int            `json:"records"`
	Invalid  int            `json:"invalid"`
	Results  []ResultOutput `json:"results,omitempty"`
	Duration string         `json:"duration"`
}

// ResultOutput is one record's outcome in JSON output.
type ResultOutput struct {
	RecordID string     `json:"record_id,omitempty"`
	Kind     string     `json:"kind,omitempty"`
	Valid    bool       `json:"valid"`
	Issues   []bv.Issue `json:"issues,omitempty"`
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("ga4gh-validate v%s\n", version)
		os.Exit(0)
	}

	if config.Help || len(config.Files) == 0 {
		flag.Usage()
		os.Exit(0)
	}

	os.Exit(run(config))
}

func parseFlags() *Config {
	config := &Config{
		Output:       OutputText,
		VocabTimeout: 500 * time.Millisecond,
	}

	var output string
	var timeoutMs int

	flag.StringVar(&config.ConfigFile, "config", "", "YAML configuration file")
	flag.StringVar(&output, "output", "text", "Output format: text, json")
	flag.BoolVar(&config.Strict, "strict", false, "Promote duplicate-external-identifier warnings to errors")
	flag.BoolVar(&config.RequireTimestamps, "require-timestamps", false, "Require created/updated timestamps on every record")
	flag.IntVar(&config.Workers, "workers", 0, "Worker count for parallel validation (0 = number of CPUs)")
	flag.StringVar(&config.VocabDir, "vocab", "", "Directory of vocabulary files (.json/.yaml) for term existence checks")
	flag.IntVar(&timeoutMs, "vocab-timeout", 0, "Vocabulary lookup timeout in milliseconds")
	flag.BoolVar(&config.Metrics, "metrics", false, "Dump validation metrics in Prometheus text format after the run")
	flag.BoolVar(&config.Quiet, "quiet", false, "Only show invalid records")
	flag.BoolVar(&config.Verbose, "verbose", false, "Show engine debug logging")
	flag.BoolVar(&config.ShowVersion, "v", false, "Show version")
	flag.BoolVar(&config.Help, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	// Configuration file first, flags override.
	if config.ConfigFile != "" {
		if err := applyConfigFile(config); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config %s: %v\n", config.ConfigFile, err)
			os.Exit(1)
		}
	}

	switch strings.ToLower(output) {
	case "json":
		config.Output = OutputJSON
	default:
		config.Output = OutputText
	}

	if timeoutMs > 0 {
		config.VocabTimeout = time.Duration(timeoutMs) * time.Millisecond
	}

	config.Files = flag.Args()

	return config
}

func applyConfigFile(config *Config) error {
	data, err := os.ReadFile(config.ConfigFile)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.StrictDuplicates {
		config.Strict = true
	}
	if fc.RequireTimestamps {
		config.RequireTimestamps = true
	}
	if fc.VocabularyTimeoutMs > 0 {
		config.VocabTimeout = time.Duration(fc.VocabularyTimeoutMs) * time.Millisecond
	}
	if fc.Workers > 0 && config.Workers == 0 {
		config.Workers = fc.Workers
	}
	if fc.VocabularyDir != "" && config.VocabDir == "" {
		config.VocabDir = fc.VocabularyDir
	}
	return nil
}

func run(config *Config) int {
	logger := zap.NewNop()
	if config.Verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to build logger: %v\n", err)
			return 1
		}
		defer logger.Sync()
	}

	opts := []bv.Option{
		bv.WithStrictDuplicates(config.Strict),
		bv.WithRequireTimestamps(config.RequireTimestamps),
		bv.WithWorkerCount(config.Workers),
		bv.WithVocabularyTimeout(config.VocabTimeout),
	}
	if config.VocabDir != "" {
		opts = append(opts, bv.WithVocabulary(true))
	}

	v, err := engine.New(context.Background(), bv.V1, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize validator: %v\n", err)
		return 1
	}
	v.SetLogger(logger)

	if config.VocabDir != "" {
		mem := vocab.NewInMemory()
		if err := vocab.LoadDir(mem, config.VocabDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load vocabularies from %s: %v\n", config.VocabDir, err)
			return 1
		}
		v.SetVocabulary(mem)
		if !config.Quiet {
			fmt.Fprintf(os.Stderr, "Loaded %d vocabulary terms from %s\n", mem.Len(), config.VocabDir)
		}
	}

	hasErrors := false
	outputs := make([]BatchOutput, 0, len(config.Files))

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
			hasErrors = hasErrors || fileHasErrors
			continue
		}

		matches, globErr := filepath.Glob(file)
		if globErr != nil {
			fmt.Fprintf(os.Stderr, "Error with pattern %q: %v\n", file, globErr)
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
			hasErrors = hasErrors || fileHasErrors
		}
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Println(string(jsonOutput))
	}

	if config.Metrics {
		if err := dumpMetrics(os.Stderr, v); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to gather metrics: %v\n", err)
		}
	}

	if hasErrors {
		return 1
	}
	return 0
}

func dumpMetrics(w io.Writer, v *engine.Validator) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(prom.NewCollector(v.Metrics())); err != nil {
		return err
	}
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}

func validateFile(v *engine.Validator, path string, config *Config) (BatchOutput, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if config.Output == OutputText {
			fmt.Printf("Error reading %s: %v\n", path, err)
		}
		return BatchOutput{Source: path, Valid: false}, true
	}
	return validateData(v, data, path, config)
}

func validateData(v *engine.Validator, data []byte, name string, config *Config) (BatchOutput, bool) {
	start := time.Now()

	records, decodeIssues, err := decodeInput(name, data)
	if err != nil {
		if config.Output == OutputText {
			fmt.Printf("Error decoding %s: %v\n", name, err)
		}
		return BatchOutput{Source: name, Valid: false}, true
	}

	report := v.ValidateBatch(context.Background(), records)
	duration := time.Since(start)

	// Attach decode issues to the slots the codec could not fill.
	seed := 0
	for i, result := range report.Results {
		if records[i] == nil && seed < len(decodeIssues) {
			result.Issues = append([]bv.Issue{decodeIssues[seed]}, result.Issues...)
			seed++
		}
	}

	output := BatchOutput{
		Source:   name,
		Valid:    report.Valid(),
		Records:  report.Total,
		Invalid:  report.InvalidCount(),
		Duration: duration.Round(time.Microsecond).String(),
	}
	for _, result := range report.Results {
		output.Results = append(output.Results, ResultOutput{
			RecordID: result.RecordID,
			Kind:     result.RecordKind,
			Valid:    result.Valid,
			Issues:   result.Issues,
		})
	}

	if config.Output == OutputText {
		printTextReport(name, report, duration, config)
	}

	return output, !report.Valid()
}

// decodeInput accepts a JSON array of documents, newline-delimited JSON,
// or a single document.
func decodeInput(name string, data []byte) ([]record.Record, []bv.Issue, error) {
	if strings.HasSuffix(name, ".ndjson") || strings.HasSuffix(name, ".jsonl") {
		return codec.DecodeStream(bytes.NewReader(data))
	}

	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if strings.HasPrefix(trimmed, "[") {
		return codec.DecodeBatch(data)
	}

	rec, err := codec.DecodeRecord(data)
	if err != nil {
		return nil, nil, err
	}
	return []record.Record{rec}, nil, nil
}

func printTextReport(name string, report *engine.BatchReport, duration time.Duration, config *Config) {
	status := "VALID"
	if !report.Valid() {
		status = "INVALID"
	}

	fmt.Printf("== %s ==\n", name)
	fmt.Printf("Status: %s\n", status)
	fmt.Printf("Records: %d (%d subjects, %d samples), Invalid: %d, Issues: %d\n",
		report.Total, report.Subjects, report.Samples, report.InvalidCount(), report.IssueCount())
	fmt.Printf("Duration: %s\n", duration.Round(time.Microsecond))

	for _, result := range report.Results {
		if config.Quiet && result.Valid {
			continue
		}
		if len(result.Issues) == 0 {
			continue
		}

		fmt.Printf("\n%s (%s):\n", displayID(result), result.RecordKind)
		for _, iss := range result.Issues {
			location := ""
			if iss.Field != "" {
				location = " @ " + iss.Field
			}
			fmt.Printf("  %s [%s] %s%s\n", severityIcon(iss.Severity), iss.Kind, iss.Diagnostics, location)
		}
	}

	fmt.Println()
}

func displayID(result *bv.Result) string {
	if result.RecordID == "" {
		return "(no id)"
	}
	return result.RecordID
}

func severityIcon(severity bv.IssueSeverity) string {
	switch severity {
	case bv.SeverityError:
		return "ERROR"
	case bv.SeverityWarning:
		return "WARN "
	case bv.SeverityAdvisory:
		return "NOTE "
	default:
		return "     "
	}
}
