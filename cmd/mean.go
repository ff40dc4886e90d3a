package cmd

import (
	"errors"
	"fmt"
	"math"

	"github.com/KaramelBytes/surveyloom/internal/report"
	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/spf13/cobra"
)

var (
	meanBy    string
	meanValue string
	meanTop   int
)

var meanCmd = &cobra.Command{
	Use:   "mean <file>",
	Short: "Mean of a numeric field per group, highest first, with the overall median",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if meanBy == "" || meanValue == "" {
			return fmt.Errorf("--by and --value are required")
		}
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		stats, err := survey.GroupMean(ds, meanBy, meanValue)
		if err != nil {
			return err
		}
		top := topOrDefault(cmd, meanTop)
		if top <= 0 {
			return fmt.Errorf("--top must be positive, got %d: %w", top, survey.ErrInvalidArgument)
		}
		if len(stats) > top {
			stats = stats[:top]
		}
		median, err := survey.Median(ds, meanValue)
		if errors.Is(err, survey.ErrUndefinedStatistic) {
			median = math.NaN()
		} else if err != nil {
			return err
		}
		title := fmt.Sprintf("Mean %s by %s (top %d)", meanValue, meanBy, top)
		return emit(cmd, report.GroupMeans(title, sourceName(args[0]), stats, median))
	},
}

func init() {
	rootCmd.AddCommand(meanCmd)
	meanCmd.Flags().StringVar(&meanBy, "by", "", "grouping field")
	meanCmd.Flags().StringVar(&meanValue, "value", "", "numeric field to average")
	meanCmd.Flags().IntVar(&meanTop, "top", 0, "groups to show (default from config)")
}
