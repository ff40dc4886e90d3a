package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cfgpkg "github.com/KaramelBytes/surveyloom/internal/config"
	"github.com/KaramelBytes/surveyloom/internal/logging"
	"github.com/KaramelBytes/surveyloom/internal/report"
	"github.com/KaramelBytes/surveyloom/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile    string
	debug      bool
	outFormat  string
	outputPath string
	// Loading flags shared by every analysis command
	mixedFields []string
	lenient     bool
	columns     []string
	sheetName   string
	sheetIndex  int
	maxRows     int

	// Loaded configuration and logger
	cfg    *cfgpkg.Global
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "surveyloom",
	Short: "SurveyLoom: frequency tables, buckets and correlations for survey exports",
	Long: `SurveyLoom loads survey results (CSV, TSV or XLSX) and answers the usual
questions about them: answer frequencies with a top-N cut, shares of
multi-choice answers, bucketed and histogrammed numbers, group means,
correlations and the income impact of selecting an option.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.surveyloom/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging to stderr")
	pf.StringVar(&outFormat, "format", "", "output format: table | markdown | json (default from config)")
	pf.StringVarP(&outputPath, "output", "o", "", "write the report to this file instead of stdout")
	pf.StringSliceVar(&mixedFields, "mixed", nil, "normalize these mixed numeric fields after loading (repeatable)")
	pf.BoolVar(&lenient, "lenient", false, "treat unparseable values in --mixed fields as missing instead of failing")
	pf.StringSliceVar(&columns, "columns", nil, "load only these columns (comma-separated)")
	pf.StringVar(&sheetName, "sheet-name", "", "XLSX: sheet name to load")
	pf.IntVar(&sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	pf.IntVar(&maxRows, "max-rows", 0, "maximum rows to read (0 = config value, unlimited by default)")
}

func loadConfig() {
	c, err := cfgpkg.Load(configPath())
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	l, err := logging.New(cfg.LogLevel, debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
		l = zap.NewNop()
	}
	logger = l
}

// configPath returns --config with a leading "~" expanded.
func configPath() string {
	p, err := utils.ExpandHome(cfgFile)
	if err != nil {
		return cfgFile
	}
	return p
}

// config returns the loaded configuration, or defaults when a command runs
// before initialisation (for example in tests).
func config() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Defaults()
	}
	return cfg
}

// emit renders reports in the selected format to --output or stdout.
// Several reports in JSON form are written as one array.
func emit(cmd *cobra.Command, reports ...*report.Report) error {
	format := outFormat
	if format == "" {
		format = config().OutputFormat
	}
	format, err := report.ParseFormat(format)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if format == report.FormatJSON && len(reports) > 1 {
		b, err := utils.PrettyJSON(reports)
		if err != nil {
			return err
		}
		buf.Write(append(b, '\n'))
	} else {
		for i, r := range reports {
			if i > 0 {
				buf.WriteString("\n")
			}
			if err := r.Render(&buf, format); err != nil {
				return err
			}
		}
	}

	if outputPath == "" {
		_, err := io.Copy(cmd.OutOrStdout(), &buf)
		return err
	}
	dest, err := utils.ExpandHome(outputPath)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(dest, buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s report to %s\n", format, dest)
	return nil
}

func sourceName(path string) string {
	return filepath.Base(path)
}
