package cmd

import (
	"fmt"

	"github.com/KaramelBytes/surveyloom/internal/report"
	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/spf13/cobra"
)

var (
	freqField  string
	freqTop    int
	freqShares bool
)

var freqCmd = &cobra.Command{
	Use:   "freq <file>",
	Short: "Count answers of a single-answer field, keeping the top N",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if freqField == "" {
			return fmt.Errorf("--field is required")
		}
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		top := topOrDefault(cmd, freqTop)
		counts, err := survey.SingleAnswer(ds, freqField, top)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("%s (top %d)", freqField, top)
		src := sourceName(args[0])
		if freqShares {
			return emit(cmd, report.Shares(title, src, survey.Shares(counts, survey.Total(counts)), survey.Total(counts)))
		}
		return emit(cmd, report.Counts(title, src, counts))
	},
}

func init() {
	rootCmd.AddCommand(freqCmd)
	freqCmd.Flags().StringVarP(&freqField, "field", "f", "", "single-answer field to count")
	freqCmd.Flags().IntVar(&freqTop, "top", 0, "labels to keep before collapsing into Other (default from config)")
	freqCmd.Flags().BoolVar(&freqShares, "shares", false, "add each label's share of answering respondents")
}
