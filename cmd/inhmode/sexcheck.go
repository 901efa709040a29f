package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/inhmode/internal/output"
	"github.com/inodb/inhmode/internal/qc"
	"github.com/inodb/inhmode/internal/record"
)

func newSexCheckCmd() *cobra.Command {
	var (
		role    string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "sexcheck [flags] <input-file>",
		Short: "Summarize per-chromosome coverage and genotypes to check sample sex",
		Long: `Write the mean read depth (ref + alt AD) per chromosome for every sample,
followed by the genotype counts per chromosome of one family member. Low X
coverage with calls on Y suggests a male sample; no Y calls and diploid X
coverage suggest a female one.`,
		Example: `  inhmode sexcheck variants.json
  inhmode sexcheck --role mother -o sexcheck.tsv variants.jsonl.gz`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := record.ReadAll(args[0])
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("%w (check that the file path is correct)", err)
				}
				return err
			}

			roles, err := record.ParseRoleMap(viper.GetStringMapString("roles"))
			if err != nil {
				return fmt.Errorf("config roles: %w", err)
			}
			if len(roles) > 0 {
				assigned := 0
				for _, r := range recs {
					assigned += roles.Apply(r)
				}
				logger.Debug("assigned roles from config", zap.Int("calls", assigned))
			}
			logger.Info("checking sample sex", zap.Int("records", len(recs)), zap.String("role", role))

			out, closeOut, err := openOutput(outPath)
			if err != nil {
				return err
			}
			defer closeOut()

			if err := output.WriteCoverage(out, qc.ChromCoverage(recs)); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if err := output.WriteCrosstab(out, qc.GenotypeCrosstab(recs, role)); err != nil {
				return err
			}
			return closeOut()
		},
	}

	cmd.Flags().StringVar(&role, "role", "self", "Family member whose genotypes are counted")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
