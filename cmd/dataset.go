package cmd

import (
	"fmt"

	"github.com/KaramelBytes/surveyloom/internal/loader"
	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadDataset reads path with the global loading flags and normalizes the
// --mixed fields.
func loadDataset(path string) (*survey.Dataset, error) {
	c := config()
	opt := loader.DefaultOptions()
	opt.MissingTokens = c.MissingTokens
	opt.Columns = columns
	opt.MaxRows = c.MaxRows
	if maxRows > 0 {
		opt.MaxRows = maxRows
	}
	opt.SheetName = sheetName
	if sheetIndex > 0 {
		opt.SheetIndex = sheetIndex
	}
	opt.Logger = logger

	ds, err := loader.Load(path, opt)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	m := c.MixedNumeric()
	if lenient {
		m.Lenient = true
	}
	for _, f := range mixedFields {
		st, err := survey.NormalizeMixedNumeric(ds, f, m)
		if err != nil {
			return nil, fmt.Errorf("normalize %s: %w", f, err)
		}
		logger.Debug("normalized mixed field",
			zap.String("field", f),
			zap.Int("converted", st.Converted),
			zap.Int("sentinels", st.Sentinels))
		if st.Coerced > 0 {
			logger.Warn("unparseable values treated as missing",
				zap.String("field", f),
				zap.Int("coerced", st.Coerced))
		}
	}
	return ds, nil
}

// topOrDefault returns the --top value when the flag was given, else the
// configured top_n. An explicit non-positive value is passed through so the
// aggregation rejects it.
func topOrDefault(cmd *cobra.Command, n int) int {
	if cmd.Flags().Changed("top") {
		return n
	}
	return config().TopN
}
