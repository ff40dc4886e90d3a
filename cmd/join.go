package cmd

import (
	"fmt"

	"github.com/KaramelBytes/surveyloom/internal/report"
	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	joinKey      string
	joinLeftKey  string
	joinRightKey string
	joinLayouts  []string
	joinA        string
	joinB        string
	joinFrom     string
	joinTo       string
)

var joinCmd = &cobra.Command{
	Use:   "join <left> <right>",
	Short: "Inner-join two tables on a key and correlate one field from each",
	Example: `  surveyloom join usd_rub.xlsx gold.csv --left-key data --right-key Date --key-layout 20060102 \
    --a curs --b Price --from 2019-01-01 --to 2019-12-31`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		leftKey, rightKey := joinLeftKey, joinRightKey
		if leftKey == "" {
			leftKey = joinKey
		}
		if rightKey == "" {
			rightKey = joinKey
		}
		if leftKey == "" || rightKey == "" || joinA == "" || joinB == "" {
			return fmt.Errorf("--key (or --left-key and --right-key), --a and --b are required")
		}
		left, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		right, err := loadDataset(args[1])
		if err != nil {
			return err
		}

		from, to := joinFrom, joinTo
		if len(joinLayouts) > 0 {
			if _, err := survey.NormalizeDates(left, leftKey, joinLayouts...); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if _, err := survey.NormalizeDates(right, rightKey, joinLayouts...); err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			if from, err = canonicalDate(from); err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			if to, err = canonicalDate(to); err != nil {
				return fmt.Errorf("--to: %w", err)
			}
		}

		joined, err := survey.Join(left, right, leftKey, rightKey)
		if err != nil {
			return err
		}
		if from != "" || to != "" {
			joined = joined.Filter(func(r survey.Row) bool {
				k := r.Get(leftKey).String()
				return (from == "" || k >= from) && (to == "" || k <= to)
			})
		}
		logger.Debug("tables joined",
			zap.String("left_key", leftKey),
			zap.String("right_key", rightKey),
			zap.Int("left", left.Len()),
			zap.Int("right", right.Len()),
			zap.Int("rows", joined.Len()))

		c, err := survey.Correlate(joined, joinA, joinB)
		if err := undefinedOK(err); err != nil {
			return err
		}
		title := fmt.Sprintf("Correlation %s ~ %s joined on %s", joinA, joinB, leftKey)
		src := sourceName(args[0]) + " + " + sourceName(args[1])
		r := report.CorrelationReport(title, src, joinA, joinB, c)
		r.Notef("Joined rows: %d", joined.Len())
		return emit(cmd, r)
	},
}

// canonicalDate rewrites a period bound into the same form as normalized keys.
func canonicalDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := survey.ParseDate(s, joinLayouts...)
	if err != nil {
		return "", err
	}
	return survey.FormatDate(t), nil
}

func init() {
	rootCmd.AddCommand(joinCmd)
	joinCmd.Flags().StringVar(&joinKey, "key", "", "key field present in both tables")
	joinCmd.Flags().StringVar(&joinLeftKey, "left-key", "", "key field of the left table (default --key)")
	joinCmd.Flags().StringVar(&joinRightKey, "right-key", "", "key field of the right table (default --key)")
	joinCmd.Flags().StringArrayVar(&joinLayouts, "key-layout", nil, "Go time layout of date keys, e.g. 20060102 (repeatable); keys are compared as ISO dates")
	joinCmd.Flags().StringVar(&joinA, "a", "", "numeric field of the joined table")
	joinCmd.Flags().StringVar(&joinB, "b", "", "second numeric field of the joined table")
	joinCmd.Flags().StringVar(&joinFrom, "from", "", "keep keys >= this value (ISO date when --key-layout is set)")
	joinCmd.Flags().StringVar(&joinTo, "to", "", "keep keys <= this value")
}
