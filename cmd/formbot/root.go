package main

import (
	"github.com/spf13/cobra"
	"github.com/tbxark/docform/config"
)

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "formbot",
		Short:         "Guided-form chat bot that fills Word templates",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFileName, "path to the config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newConsoleCmd(&configPath))
	root.AddCommand(newRenderCmd(&configPath))
	root.AddCommand(newFieldsCmd(&configPath))
	return root
}
