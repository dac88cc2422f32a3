package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/formwork/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <definition>",
	Short: "Fill a form interactively in the terminal",
	Long:  `Loads the given form definition and prompts for each field in order, re-asking until the answer passes the field's rules. Submits once every field is valid.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		plain, _ := cmd.Flags().GetBool("plain")
		attempts, _ := cmd.Flags().GetInt("attempts")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := cli.Execute(ctx, cli.Options{
			DefinitionPath: args[0],
			Plain:          plain,
			Debug:          debug,
			MaxAttempts:    attempts,
		})
		if err != nil {
			if ctx.Err() != nil {
				fmt.Println("\nAborted.")
				return
			}
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("plain", false, "Disable colors and markdown rendering")
	runCmd.Flags().IntP("attempts", "a", 0, "Per-field retry limit (0 = unlimited)")
}
