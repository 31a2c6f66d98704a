// Command formctl checks and publishes form section definitions.
package main

import (
	"fmt"
	"os"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "formctl",
	Short: "Manage the field configuration of the registration forms",
	Long: `formctl validates section definition files and seeds them into the
MongoDB collection read by the API. Files use the same YAML layout as the
built-in defaults.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			os.Setenv("LOG_LEVEL", "debug")
		}
		return logging.InitLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(defaultsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
