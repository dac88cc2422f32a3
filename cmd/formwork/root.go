package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "formwork",
	Short: "Formwork runs forms defined in YAML or JSON",
	Long:  `Formwork loads a declarative form definition, validates answers against its rules, and submits the result. Forms can be filled interactively in the terminal or hosted over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
