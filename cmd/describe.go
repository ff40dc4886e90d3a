package cmd

import (
	"github.com/KaramelBytes/surveyloom/internal/report"
	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/spf13/cobra"
)

var describeDelimiter string

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Profile every field and summarize the numeric ones",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		delim := describeDelimiter
		if delim == "" {
			delim = config().MultiDelimiter
		}
		m := config().MixedNumeric()
		profiles := survey.Profile(ds, delim, m)

		var sums []survey.NumericSummary
		for _, p := range profiles {
			if p.Kind != survey.KindNumeric {
				continue
			}
			s, err := survey.Describe(ds, p.Field)
			if err != nil {
				return err
			}
			sums = append(sums, s)
		}

		src := sourceName(args[0])
		reports := []*report.Report{report.ProfileReport(src, ds.Len(), profiles)}
		if len(sums) > 0 {
			reports = append(reports, report.SummaryReport(src, sums))
		}
		return emit(cmd, reports...)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVar(&describeDelimiter, "delimiter", "", "multi-answer delimiter used to detect multi fields (default from config)")
}
