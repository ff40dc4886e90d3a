package cmd

import (
	"fmt"

	"github.com/KaramelBytes/surveyloom/internal/report"
	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	bucketField  string
	bucketBounds []float64
	histField    string
	histBins     int
)

var bucketCmd = &cobra.Command{
	Use:   "bucket <file>",
	Short: "Count a numeric field in [lower, upper) buckets",
	Example: `  surveyloom bucket survey.csv --field Age --bounds 0,18,30,40,50,100
  surveyloom bucket survey.csv --field YearsCode --mixed YearsCode --bounds 0,1,5,10,51.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if bucketField == "" {
			return fmt.Errorf("--field is required")
		}
		if len(bucketBounds) == 0 {
			return fmt.Errorf("--bounds is required")
		}
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		res, err := survey.Bucketize(ds, bucketField, bucketBounds)
		if err != nil {
			return err
		}
		if res.Excluded > 0 {
			logger.Warn("values outside all buckets", zap.String("field", bucketField), zap.Int("excluded", res.Excluded))
		}
		return emit(cmd, report.Buckets(bucketField, sourceName(args[0]), res))
	},
}

var histCmd = &cobra.Command{
	Use:   "hist <file>",
	Short: "Equal-width histogram of a numeric field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if histField == "" {
			return fmt.Errorf("--field is required")
		}
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		bins := histBins
		if bins <= 0 {
			bins = config().HistogramBins
		}
		res, err := survey.Histogram(ds, histField, bins)
		if err != nil {
			return err
		}
		return emit(cmd, report.Buckets(fmt.Sprintf("%s (%d bins)", histField, bins), sourceName(args[0]), res))
	},
}

func init() {
	rootCmd.AddCommand(bucketCmd)
	bucketCmd.Flags().StringVarP(&bucketField, "field", "f", "", "numeric field to bucket")
	bucketCmd.Flags().Float64SliceVar(&bucketBounds, "bounds", nil, "strictly increasing bucket boundaries, e.g. 0,18,30")

	rootCmd.AddCommand(histCmd)
	histCmd.Flags().StringVarP(&histField, "field", "f", "", "numeric field")
	histCmd.Flags().IntVar(&histBins, "bins", 0, "number of bins (default from config)")
}
