package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nvicctl",
	Short: "Inspect and exercise the STM32F10x interrupt controller",
	Long: `nvicctl lists the interrupt line table and register map of a target,
runs scripted driver sessions against a simulated controller and reports which
enabled lines can preempt which.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(linesCmd, regsCmd, runCmd, analyzeCmd, encodeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
