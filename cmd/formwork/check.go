package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/formwork/pkg/formdef"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <definition>",
	Short: "Check a form definition for consistency",
	Long:  `Parses the definition and compiles every field's rule chain, reporting unknown rule types, bad parameters, and duplicate fields.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(args[0]); err != nil {
			fmt.Printf("Check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Definition is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(path string) error {
	def, err := formdef.Load(path)
	if err != nil {
		return err
	}

	fields, err := def.Compile()
	if err != nil {
		return err
	}

	fmt.Printf("Form %q: %d field(s)\n", def.Name, len(fields))
	for _, f := range fields {
		fmt.Printf("  - %s (%d rule(s))\n", f.Name, len(f.Config.Rules))
	}
	return nil
}
