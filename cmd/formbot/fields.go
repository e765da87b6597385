package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tbxark/docform/config"
	"github.com/tbxark/docform/types"
)

func newFieldsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "Print the configured form fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			sch, err := cfg.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), types.FormatFields(sch.Fields()))
			return err
		},
	}
}
