package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/tourpref/internal/category"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect the question corpus",
}

var questionsListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List every question with its options and categories",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank(optionalArg(args))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		dim := color.New(color.Faint)

		for i, q := range bank.Questions() {
			bold.Fprintf(out, "%3d. %s\n", i+1, q.Text)
			for _, o := range q.Options {
				fmt.Fprintf(out, "       - %-48s ", o.Text)
				dim.Fprintln(out, o.Category.Key())
			}
		}
		fmt.Fprintf(out, "\n%d questions\n", bank.Len())
		return nil
	},
}

var questionsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a corpus and show how many options feed each category",
	Long: `Load and validate a question corpus (JSON or YAML), then print how many
options across the corpus feed each category. Categories that no option
feeds are flagged; they can never score in a session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank(optionalArg(args))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		green := color.New(color.FgGreen)
		yellow := color.New(color.FgYellow)

		green.Fprintf(out, "✓ %d questions loaded\n\n", bank.Len())

		fmt.Fprintf(out, "%-34s  %-12s  %7s\n", "Category", "Key", "Options")
		fmt.Fprintln(out, strings.Repeat("─", 58))

		cov := bank.CategoryCoverage()
		var missing []string
		for _, c := range category.All() {
			n := cov[c]
			line := fmt.Sprintf("%-34s  %-12s  %7d", c.Label(), c.Key(), n)
			if n == 0 {
				missing = append(missing, c.Key())
				yellow.Fprintln(out, line)
				continue
			}
			fmt.Fprintln(out, line)
		}

		if len(missing) > 0 {
			yellow.Fprintf(out, "\nNo options feed: %s\n", strings.Join(missing, ", "))
		}
		return nil
	},
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func init() {
	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsValidateCmd)
}
