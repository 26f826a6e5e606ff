package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"omibyte.io/nvic/targets"
)

var (
	linesOpts = struct {
		chip string
	}{}

	linesCmd = &cobra.Command{
		Use:   "lines",
		Short: "List the interrupt lines of a target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printLines(cmd.OutOrStdout(), linesOpts.chip)
		},
	}
)

func init() {
	addChipFlag(linesCmd.Flags(), &linesOpts.chip)
}

func printLines(w io.Writer, chip string) error {
	target, err := targets.All().Find(chip)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d lines\n", target.Series, target.Lines)
	fmt.Fprintf(w, "%3s  %-16s %4s %3s  %s\n", "IRQ", "NAME", "BANK", "BIT", "DESCRIPTION")
	for _, intr := range target.Interrupts() {
		fmt.Fprintf(w, "%3d  %-16s %4d %3d  %s\n", intr.Value, intr.Name, intr.Value/32, intr.Value%32, intr.Description)
	}
	return nil
}
