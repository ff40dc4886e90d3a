package cmd

import (
	"fmt"

	"github.com/KaramelBytes/surveyloom/internal/report"
	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/spf13/cobra"
)

var (
	multiField     string
	multiDelimiter string
	multiTop       int
)

var multiCmd = &cobra.Command{
	Use:   "multi <file>",
	Short: "Share of respondents selecting each option of a multi-answer field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if multiField == "" {
			return fmt.Errorf("--field is required")
		}
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		delim := multiDelimiter
		if delim == "" {
			delim = config().MultiDelimiter
		}
		top := topOrDefault(cmd, multiTop)
		res, err := survey.MultiAnswer(ds, multiField, delim, top)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("%s (top %d)", multiField, top)
		return emit(cmd, report.Shares(title, sourceName(args[0]), res.Shares, res.Respondents))
	},
}

func init() {
	rootCmd.AddCommand(multiCmd)
	multiCmd.Flags().StringVarP(&multiField, "field", "f", "", "multi-answer field")
	multiCmd.Flags().StringVar(&multiDelimiter, "delimiter", "", "answer separator (default from config, ';')")
	multiCmd.Flags().IntVar(&multiTop, "top", 0, "options to keep before collapsing into Other (default from config)")
}
