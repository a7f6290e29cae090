package ctl

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gdps-go/gdps/internal/cli/common"
)

//go:embed config.schema.json
var configSchema []byte

func newConfigCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Inspect the service configuration"}

	test := &cobra.Command{
		Use:   "test",
		Short: "Validate the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error {
			settings, err := o.settings()
			if err != nil {
				return err
			}
			if err := common.ValidateSchema(configSchema, settings); err != nil {
				return err
			}
			if _, err := o.load(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: config OK\n", o.configFile)
			return nil
		},
	}

	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error {
			settings, err := o.settings()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(settings)
		},
	}

	cmd.AddCommand(test, printCmd)
	return cmd
}
