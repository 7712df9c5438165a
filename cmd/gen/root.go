package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/maxshaw/poco"
	"github.com/maxshaw/poco/config"
	"github.com/maxshaw/poco/gen"
	"github.com/maxshaw/poco/logging"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logger     zerolog.Logger
	)

	root := &cobra.Command{
		Use:           "poco-gen",
		Short:         "Derive CRUD statements from poco models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger = logging.New(logging.Config{
				Level:  cfg.Log.Level,
				Pretty: cfg.Log.Pretty,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a poco config file")

	root.AddCommand(newGenCmd(&logger), newSQLCmd())

	return root
}

func newGenCmd(logger *zerolog.Logger) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write schema registrations for the models in a package",
		RunE: func(cmd *cobra.Command, _ []string) error {
			written, err := gen.Gen(dir)
			if err != nil {
				return err
			}

			for _, path := range written {
				logger.Info().Str("file", path).Msg("Generated")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "./internal/model", "model package directory")

	return cmd
}

func newSQLCmd() *cobra.Command {
	var (
		schemaPath string
		filter     []string
	)

	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Print the statements of the models in a schema file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			models, err := config.LoadSchemas(schemaPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, m := range models {
				meta, err := poco.Compile(poco.Schema{
					Table: m.Table,
					Columns: lo.Map(m.Fields, func(f config.Field, _ int) poco.Column {
						return poco.Column{Name: f.Name, PrimaryKey: f.PK}
					}),
				})
				if err != nil {
					return fmt.Errorf("model %d: %w", i, err)
				}

				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "-- %s\n", meta.Table)
				fmt.Fprintln(out, meta.Filter(meta.Select, filter...))
				fmt.Fprintln(out, meta.Insert)
				fmt.Fprintln(out, meta.Filter(meta.Update, filter...))
				fmt.Fprintln(out, meta.Filter(meta.Delete, filter...))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "schema.yaml", "schema file")
	cmd.Flags().StringSliceVar(&filter, "filter", nil, "fields to filter SELECT, UPDATE and DELETE on")

	return cmd
}
