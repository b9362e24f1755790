package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/semmls/export"
)

func graphCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Inspect the merged provenance graph",
	}
	cmd.AddCommand(graphExportCmd(opts))
	return cmd
}

func graphExportCmd(opts *rootOptions) *cobra.Command {
	var (
		revision string
		format   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "export [PATHS...]",
		Short: "Serialize the provenance graph merged with stored annotations",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			app, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			g, err := app.Build(cmd.Context(), revision, args)
			if err != nil {
				return err
			}
			out, err := export.NewRDFExporter(g.Namespaces()).Export(g, f)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
			if err := os.WriteFile(output, []byte(out), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			app.logger.Info("Exported provenance graph", "path", output, "triples", g.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&revision, "revision", defaultRevision, "Revision of the provenance graph")
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatTurtle), "RDF format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
