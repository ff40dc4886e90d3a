// Package loader reads delimited-text and spreadsheet files into survey
// datasets.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/surveyloom/internal/survey"
	"go.uber.org/zap"
)

// Options controls how a file becomes a dataset.
type Options struct {
	// Delimiter for CSV. If 0, sniffed from the extension and header line.
	Delimiter rune
	// MissingTokens are cell values (after trimming spaces) read as missing.
	MissingTokens []string
	// Columns restricts the schema to these fields, in this order. Empty keeps all.
	Columns []string
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
	// XLSX sheet selection. SheetName wins; SheetIndex is 1-based.
	SheetName  string
	SheetIndex int
	Logger     *zap.Logger
}

// DefaultOptions mirrors the missing-value markers common in survey exports.
func DefaultOptions() Options {
	return Options{
		MissingTokens: []string{"", "NA", "NaN", "N/A"},
		SheetIndex:    1,
	}
}

// Loader reads one family of file formats.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opt Options) (*survey.Dataset, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupported indicates no registered loader accepts the file.
var ErrUnsupported = errors.New("unsupported table format")

// ErrEmptyInput indicates a file without even a header row.
var ErrEmptyInput = errors.New("empty input: no header row")

// Load selects a loader by file name and reads path into a dataset.
func Load(path string, opt Options) (*survey.Dataset, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			ds, err := l.Load(path, opt)
			if err != nil {
				return nil, err
			}
			logger(opt).Debug("dataset loaded",
				zap.String("path", path),
				zap.Int("rows", ds.Len()),
				zap.Int("fields", len(ds.Fields())))
			return ds, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

func logger(opt Options) *zap.Logger {
	if opt.Logger == nil {
		return zap.NewNop()
	}
	return opt.Logger
}

func missingSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[strings.TrimSpace(t)] = struct{}{}
	}
	return set
}

// tableBuilder turns a header plus raw string rows into a dataset,
// applying the column subset, row limit and missing tokens.
type tableBuilder struct {
	ds      *survey.Dataset
	pick    []int
	missing map[string]struct{}
	max     int
	// Skipped counts rows read past MaxRows.
	skipped int
}

func newTableBuilder(name string, header []string, opt Options) (*tableBuilder, error) {
	clean := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		clean[i] = h
	}
	pick := make([]int, 0, len(clean))
	fields := clean
	if len(opt.Columns) > 0 {
		pos := make(map[string]int, len(clean))
		for i, h := range clean {
			pos[h] = i
		}
		fields = make([]string, 0, len(opt.Columns))
		for _, c := range opt.Columns {
			i, ok := pos[strings.TrimSpace(c)]
			if !ok {
				return nil, &survey.FieldError{Field: c, Err: survey.ErrFieldNotFound}
			}
			pick = append(pick, i)
			fields = append(fields, clean[i])
		}
	} else {
		for i := range clean {
			pick = append(pick, i)
		}
	}
	ds, err := survey.NewDataset(fields...)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	ds.Name = name
	return &tableBuilder{ds: ds, pick: pick, missing: missingSet(opt.MissingTokens), max: opt.MaxRows}, nil
}

func (b *tableBuilder) add(rec []string) error {
	if b.max > 0 && b.ds.Len() >= b.max {
		b.skipped++
		return nil
	}
	// cells past the end of a short record stay missing
	row := make([]survey.Value, len(b.pick))
	for k, i := range b.pick {
		if i >= len(rec) {
			continue
		}
		if _, ok := b.missing[strings.TrimSpace(rec[i])]; ok {
			continue
		}
		row[k] = survey.Text(rec[i])
	}
	return b.ds.Append(row...)
}

func (b *tableBuilder) finish(opt Options) *survey.Dataset {
	if b.skipped > 0 {
		logger(opt).Warn("row limit reached",
			zap.String("dataset", b.ds.Name),
			zap.Int("max_rows", b.max),
			zap.Int("skipped", b.skipped))
	}
	return b.ds
}
