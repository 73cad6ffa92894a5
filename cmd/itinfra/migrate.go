package main

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/odpi/itinfra/internal/app/runtime"
	"github.com/odpi/itinfra/internal/platform/migrations"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the repository schema to the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if list {
				names, err := migrations.Names()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), path.Base(name))
				}
				return nil
			}

			cfg, err := opts.load()
			if err != nil {
				return err
			}
			db, err := runtime.OpenDatabase(cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			if err := migrations.Apply(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list the embedded migrations without applying them")
	return cmd
}
