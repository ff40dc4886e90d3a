package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. SURVEYLOOM_TOP_N.
const EnvPrefix = "SURVEYLOOM"

// Global configuration structure.
type Global struct {
	// Cell values read as missing when loading a file.
	MissingTokens  []string `mapstructure:"missing_tokens" yaml:"missing_tokens"`
	MultiDelimiter string   `mapstructure:"multi_delimiter" yaml:"multi_delimiter"`
	TopN           int      `mapstructure:"top_n" yaml:"top_n"`
	HistogramBins  int      `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	MaxRows        int      `mapstructure:"max_rows" yaml:"max_rows"`

	// Mixed numeric sentinels ("Less than 1 year" / "More than 50 years")
	UnderOneToken  string  `mapstructure:"under_one_token" yaml:"under_one_token"`
	UnderOneValue  float64 `mapstructure:"under_one_value" yaml:"under_one_value"`
	OverFiftyToken string  `mapstructure:"over_fifty_token" yaml:"over_fifty_token"`
	OverFiftyValue float64 `mapstructure:"over_fifty_value" yaml:"over_fifty_value"`
	LenientMixed   bool    `mapstructure:"lenient_mixed" yaml:"lenient_mixed"`

	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
}

// Keys lists every configuration key in display order.
var Keys = []string{
	"missing_tokens", "multi_delimiter", "top_n", "histogram_bins", "max_rows",
	"under_one_token", "under_one_value", "over_fifty_token", "over_fifty_value",
	"lenient_mixed", "output_format", "log_level",
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	mixed := survey.DefaultMixedNumeric()
	return &Global{
		MissingTokens:  []string{"", "NA", "NaN", "N/A"},
		MultiDelimiter: survey.DefaultDelimiter,
		TopN:           10,
		HistogramBins:  10,
		UnderOneToken:  mixed.UnderToken,
		UnderOneValue:  mixed.UnderValue,
		OverFiftyToken: mixed.OverToken,
		OverFiftyValue: mixed.OverValue,
		OutputFormat:   "table",
		LogLevel:       "warn",
	}
}

// Dir returns ~/.surveyloom.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".surveyloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.surveyloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A .env file in the working
// directory is applied to the environment first without overriding
// variables that are already set.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("missing_tokens", d.MissingTokens)
	v.SetDefault("multi_delimiter", d.MultiDelimiter)
	v.SetDefault("top_n", d.TopN)
	v.SetDefault("histogram_bins", d.HistogramBins)
	v.SetDefault("max_rows", d.MaxRows)
	v.SetDefault("under_one_token", d.UnderOneToken)
	v.SetDefault("under_one_value", d.UnderOneValue)
	v.SetDefault("over_fifty_token", d.OverFiftyToken)
	v.SetDefault("over_fifty_value", d.OverFiftyValue)
	v.SetDefault("lenient_mixed", d.LenientMixed)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// MixedNumeric returns the sentinel mapping configured for mixed fields.
func (c *Global) MixedNumeric() survey.MixedNumeric {
	return survey.MixedNumeric{
		UnderToken: c.UnderOneToken,
		UnderValue: c.UnderOneValue,
		OverToken:  c.OverFiftyToken,
		OverValue:  c.OverFiftyValue,
		Lenient:    c.LenientMixed,
	}
}

// Get returns the display value of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "missing_tokens":
		quoted := make([]string, len(c.MissingTokens))
		for i, t := range c.MissingTokens {
			quoted[i] = strconv.Quote(t)
		}
		return "[" + strings.Join(quoted, ", ") + "]", nil
	case "multi_delimiter":
		return strconv.Quote(c.MultiDelimiter), nil
	case "top_n":
		return strconv.Itoa(c.TopN), nil
	case "histogram_bins":
		return strconv.Itoa(c.HistogramBins), nil
	case "max_rows":
		return strconv.Itoa(c.MaxRows), nil
	case "under_one_token":
		return c.UnderOneToken, nil
	case "under_one_value":
		return strconv.FormatFloat(c.UnderOneValue, 'f', -1, 64), nil
	case "over_fifty_token":
		return c.OverFiftyToken, nil
	case "over_fifty_value":
		return strconv.FormatFloat(c.OverFiftyValue, 'f', -1, 64), nil
	case "lenient_mixed":
		return strconv.FormatBool(c.LenientMixed), nil
	case "output_format":
		return c.OutputFormat, nil
	case "log_level":
		return c.LogLevel, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Set parses val and assigns it to key.
func (c *Global) Set(key, val string) error {
	switch key {
	case "missing_tokens":
		// comma-separated; an empty item keeps the empty-cell token
		c.MissingTokens = strings.Split(val, ",")
		for i := range c.MissingTokens {
			c.MissingTokens[i] = strings.TrimSpace(c.MissingTokens[i])
		}
	case "multi_delimiter":
		if val == "" {
			return fmt.Errorf("multi_delimiter must not be empty")
		}
		c.MultiDelimiter = val
	case "top_n", "histogram_bins", "max_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 || (i == 0 && key != "max_rows") {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		switch key {
		case "top_n":
			c.TopN = i
		case "histogram_bins":
			c.HistogramBins = i
		default:
			c.MaxRows = i
		}
	case "under_one_token":
		c.UnderOneToken = val
	case "over_fifty_token":
		c.OverFiftyToken = val
	case "under_one_value", "over_fifty_value":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid float for %s: %w", key, err)
		}
		if key == "under_one_value" {
			c.UnderOneValue = f
		} else {
			c.OverFiftyValue = f
		}
	case "lenient_mixed":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for lenient_mixed: %w", err)
		}
		c.LenientMixed = b
	case "output_format":
		switch strings.ToLower(val) {
		case "table", "markdown", "json":
			c.OutputFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid output_format: %s (use table, markdown or json)", val)
		}
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
