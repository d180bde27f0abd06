package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillnav/internal/exam"
)

var examsCmd = &cobra.Command{
	Use:   "exams",
	Short: "List the competitive exams the exam hub can plan for",
	RunE: func(cmd *cobra.Command, args []string) error {
		hints, _ := cmd.Flags().GetStringSlice("hint")
		exams := exam.Catalog
		if len(hints) > 0 {
			exams = exam.Suggest(hints...)
		}

		fmt.Printf("%-10s  %-72s  %s\n", "Key", "Name", "Fields")
		fmt.Println(strings.Repeat("─", 110))
		for _, e := range exams {
			fmt.Printf("%-10s  %-72s  %s\n", e.Key, truncate(e.Name, 72), strings.Join(e.Fields, ", "))
		}

		fmt.Printf("\n%d exams\n", len(exams))
		return nil
	},
}

func init() {
	examsCmd.Flags().StringSlice("hint", nil, "Rank exams matching these fields first (e.g. --hint Banking)")

	rootCmd.AddCommand(examsCmd)
}
