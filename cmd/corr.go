package cmd

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/surveyloom/internal/report"
	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	corrA      string
	corrB      string
	corrBy     string
	corrEquals string
)

var corrCmd = &cobra.Command{
	Use:   "corr <file>",
	Short: "Pearson correlation of two numeric fields, optionally within one group",
	Example: `  surveyloom corr survey.csv --a ConvertedComp --b WorkWeekHrs
  surveyloom corr survey.csv --a Age --b ConvertedComp --by LanguageWorkedWith --equals Python`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if corrA == "" || corrB == "" {
			return fmt.Errorf("--a and --b are required")
		}
		if (corrBy == "") != (corrEquals == "") {
			return fmt.Errorf("--by and --equals must be used together")
		}
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		var c survey.Correlation
		title := fmt.Sprintf("Correlation %s ~ %s", corrA, corrB)
		if corrBy != "" {
			c, err = survey.GroupCorrelation(ds, corrBy, corrA, corrB, corrEquals)
			title += fmt.Sprintf(" where %s = %s", corrBy, corrEquals)
		} else {
			c, err = survey.Correlate(ds, corrA, corrB)
		}
		if err := undefinedOK(err); err != nil {
			return err
		}
		return emit(cmd, report.CorrelationReport(title, sourceName(args[0]), corrA, corrB, c))
	},
}

// undefinedOK lets an undefined statistic through to be reported as such.
func undefinedOK(err error) error {
	if errors.Is(err, survey.ErrUndefinedStatistic) {
		logger.Warn("statistic undefined", zap.Error(err))
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(corrCmd)
	corrCmd.Flags().StringVar(&corrA, "a", "", "first numeric field")
	corrCmd.Flags().StringVar(&corrB, "b", "", "second numeric field")
	corrCmd.Flags().StringVar(&corrBy, "by", "", "restrict to rows where this field equals --equals")
	corrCmd.Flags().StringVar(&corrEquals, "equals", "", "group value for --by")
}
