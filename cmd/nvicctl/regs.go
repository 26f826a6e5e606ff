package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	regsOpts = struct {
		chip string
	}{}

	regsCmd = &cobra.Command{
		Use:   "regs",
		Short: "Print the register map the driver uses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRegs(cmd.OutOrStdout(), regsOpts.chip)
		},
	}
)

func init() {
	addChipFlag(regsCmd.Flags(), &regsOpts.chip)
}

func printRegs(w io.Writer, chip string) error {
	sess, err := newSession(chip)
	if err != nil {
		return err
	}
	for _, reg := range sess.ctrl.Registers() {
		fmt.Fprintln(w, reg)
	}
	return nil
}
