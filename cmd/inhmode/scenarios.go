package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/inhmode/internal/output"
	"github.com/inodb/inhmode/internal/scenario"
)

func newScenariosCmd() *cobra.Command {
	var (
		outputFile string
		filter     string
	)

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Tabulate the classification of every biallelic trio scenario",
		Long: `Enumerate mother, father and child genotypes over 0/0, 0/1 and 1/1 (skipping
all hom-ref) across autosome, chrX and chrY contexts with male and female
children and the novoPP values that change the outcome, and classify each.`,
		Example: `  inhmode scenarios -o scenarios.tsv
  inhmode scenarios --condition chrX`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cases []scenario.Case
			for _, c := range scenario.Cases() {
				if filter == "" || strings.Contains(c.Condition.Name, filter) {
					cases = append(cases, c)
				}
			}
			rows, err := scenario.Run(cases)
			if err != nil {
				return err
			}
			logger.Debug("classified scenarios", zap.Int("cases", len(rows)))

			out, closeOut, err := openOutput(outputFile)
			if err != nil {
				return err
			}
			defer closeOut()

			if err := output.WriteScenarios(out, rows); err != nil {
				return fmt.Errorf("write scenarios: %w", err)
			}
			return closeOut()
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&filter, "condition", "", "Only include conditions containing this text")

	return cmd
}
