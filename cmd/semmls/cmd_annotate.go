package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/c360studio/semmls/storage"
)

func annotateCmd(opts *rootOptions) *cobra.Command {
	var activity string

	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Fold pending metadata documents into annotations of a run's activity",
		Long: `Consume every metadata document in the project's metadata folder and store it
as an annotation targeting the given activity.

Documents are removed from the folder as they are read.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := opts.app(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			collector := app.Collector()
			annotations, err := collector.Collect(activity)
			if err != nil {
				return err
			}

			if err := storage.SaveAll(ctx, app.store, annotations); err != nil {
				ids := make([]string, 0, len(annotations))
				for _, a := range annotations {
					ids = append(ids, a.ID)
				}
				app.logger.Error("Metadata documents were consumed but not stored",
					slog.String("dir", collector.Dir()),
					slog.Any("annotations", ids),
					slog.String("error", err.Error()))
				return fmt.Errorf("store annotations: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stored %d annotation(s) for %s\n", len(annotations), activity)
			return nil
		},
	}

	cmd.Flags().StringVar(&activity, "activity", "", "Activity IRI of the run (required)")
	_ = cmd.MarkFlagRequired("activity")
	return cmd
}
