package cmd

import (
	"fmt"

	"github.com/KaramelBytes/surveyloom/internal/report"
	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/spf13/cobra"
)

var (
	impactField  string
	impactOption string
	impactValue  string
)

var impactCmd = &cobra.Command{
	Use:   "impact <file>",
	Short: "Compare a numeric mean between respondents with and without an option",
	Example: `  surveyloom impact survey.csv --field DevType --option "full-stack" --value ConvertedComp`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if impactField == "" || impactOption == "" || impactValue == "" {
			return fmt.Errorf("--field, --option and --value are required")
		}
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		im, err := survey.OptionImpact(ds, impactField, impactOption, impactValue)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("%s: %s impact on %s", impactField, impactOption, impactValue)
		return emit(cmd, report.ImpactReport(title, sourceName(args[0]), im))
	},
}

func init() {
	rootCmd.AddCommand(impactCmd)
	impactCmd.Flags().StringVarP(&impactField, "field", "f", "", "multi-answer field holding the option")
	impactCmd.Flags().StringVar(&impactOption, "option", "", "option text matched as a substring")
	impactCmd.Flags().StringVar(&impactValue, "value", "", "numeric field to compare")
}
