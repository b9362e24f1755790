package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/semmls/config"
	"github.com/c360studio/semmls/query"
	"github.com/c360studio/semmls/report"
)

const defaultRevision = "HEAD"

func leaderboardCmd(opts *rootOptions) *cobra.Command {
	var (
		revision string
		format   string
		metric   string
	)

	cmd := &cobra.Command{
		Use:   "leaderboard [PATHS...]",
		Short: "Leaderboard based on evaluation metrics of machine learning models",
		Long: `Rank runs by an evaluation metric, best first.

When PATHS are given, only runs with an input whose path contains one of them are shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if !cmd.Flags().Changed("metric") {
				metric = app.cfg.Report.Metric
			}
			f, err := reportFormat(cmd, format, app.cfg)
			if err != nil {
				return err
			}

			g, err := app.Build(cmd.Context(), revision, args)
			if err != nil {
				return err
			}
			rows, err := query.NewEngine(g, g.Namespaces()).Metrics()
			if err != nil {
				return fmt.Errorf("query metrics: %w", err)
			}

			board := report.BuildLeaderboard(rows, metric, args)
			app.logger.Debug("Built leaderboard",
				"metric", metric, "runs", len(board.Entries))
			fmt.Fprintln(cmd.OutOrStdout(), board.Render(f))
			return nil
		},
	}

	cmd.Flags().StringVar(&revision, "revision", defaultRevision, "Revision of the provenance graph")
	cmd.Flags().StringVar(&format, "format", string(report.FormatASCII), "Output format (ascii, markdown)")
	cmd.Flags().StringVar(&metric, "metric", "accuracy", "Evaluation metric to rank by")
	return cmd
}

func paramsCmd(opts *rootOptions) *cobra.Command {
	var (
		revision string
		format   string
		diff     []string
	)

	cmd := &cobra.Command{
		Use:   "params [PATHS...]",
		Short: "List the hyperparameter settings of runs",
		Long: `List the hyperparameter settings of every run, or with --diff compare two runs.

A diff reports only hyperparameters set in both runs with different values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			diff, args = diffRuns(diff, args)
			if len(diff) != 0 && len(diff) != 2 {
				return fmt.Errorf("--diff takes exactly two run ids, got %d", len(diff))
			}

			app, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			f, err := reportFormat(cmd, format, app.cfg)
			if err != nil {
				return err
			}

			g, err := app.Build(cmd.Context(), revision, args)
			if err != nil {
				return err
			}
			rows, err := query.NewEngine(g, g.Namespaces()).HyperParameters()
			if err != nil {
				return fmt.Errorf("query hyperparameters: %w", err)
			}
			params := report.BuildParams(rows)

			out := cmd.OutOrStdout()
			if len(diff) == 0 {
				fmt.Fprintln(out, params.Render(f))
				return nil
			}

			for _, id := range diff {
				if _, ok := params.Get(id); !ok {
					fmt.Fprintf(out, "Unknown revision provided for diff parameter: %s\n", id)
					return nil
				}
			}
			d, err := report.Diff(params, diff[0], diff[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, d.Render(f))
			return nil
		},
	}

	cmd.Flags().StringVar(&revision, "revision", defaultRevision, "Revision of the provenance graph")
	cmd.Flags().StringVar(&format, "format", string(report.FormatASCII), "Output format (ascii, markdown)")
	cmd.Flags().StringSliceVar(&diff, "diff", nil, "Compare two runs: --diff RUN_A RUN_B, --diff RUN_A --diff RUN_B or --diff RUN_A,RUN_B")
	return cmd
}

func reportFormat(cmd *cobra.Command, flag string, cfg *config.Config) (report.Format, error) {
	if !cmd.Flags().Changed("format") {
		flag = cfg.Report.Format
	}
	return report.ParseFormat(flag)
}

// diffRuns completes "--diff RUN_A RUN_B": the flag binds one value, so the second run
// arrives as the first positional argument.
func diffRuns(diff, args []string) ([]string, []string) {
	if len(diff) == 1 && len(args) > 0 {
		return []string{diff[0], args[0]}, args[1:]
	}
	return diff, args
}
