package main

import (
	"fmt"

	"github.com/promotora-credito/app-cadastro/internal/formengine"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults [form_key]",
	Short: "Print the built-in sections of a form as YAML",
	Long:  `Prints the sections the API serves when nothing is stored. The output is a valid input for seed.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formKey := "cliente"
		if len(args) == 1 {
			formKey = args[0]
		}
		sections, err := formengine.DefaultSections(formKey)
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		if err := enc.Encode(formengine.SectionsFile{FormKey: formKey, Sections: sections}); err != nil {
			return fmt.Errorf("failed to encode sections: %w", err)
		}
		return nil
	},
}
