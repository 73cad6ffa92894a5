package main

import (
	"github.com/spf13/cobra"

	"github.com/odpi/itinfra/internal/config"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "itinfra",
		Short: "IT infrastructure open metadata access service",
		Long: `itinfra serves the IT infrastructure access service: hosts, software
server platforms, software servers, processes, IT profiles and their
feedback, collections, external references and licenses.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"configuration file (default $ITINFRA_CONFIG or "+config.DefaultPath+")")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newDiscoverHostCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.configPath)
}
