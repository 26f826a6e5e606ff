package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"omibyte.io/nvic/nvic"
	"omibyte.io/nvic/targets"
)

var (
	encodeOpts = struct {
		chip  string
		mode  nvic.GroupingMode
		group uint8
		sub   uint8
	}{}

	encodeCmd = &cobra.Command{
		Use:   "encode",
		Short: "Compute a priority byte from group and sub-priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return encode(cmd.OutOrStdout(), encodeOpts.chip, encodeOpts.mode, encodeOpts.group, encodeOpts.sub)
		},
	}
)

func init() {
	encodeOpts.mode = nvic.Group4Sub0
	flags := encodeCmd.Flags()
	addChipFlag(flags, &encodeOpts.chip)
	flags.VarP(groupingValue{&encodeOpts.mode}, "mode", "m", "priority grouping (4g0s, 3g1s, 2g2s, 1g3s, 0g4s)")
	flags.Uint8VarP(&encodeOpts.group, "group", "g", 0, "group priority")
	flags.Uint8VarP(&encodeOpts.sub, "sub", "s", 0, "sub-priority")
}

func encode(w io.Writer, chip string, mode nvic.GroupingMode, group, sub uint8) error {
	target, err := targets.All().Find(chip)
	if err != nil {
		return err
	}
	value, err := nvic.EncodePriority(mode, target.PriorityBits, group, sub)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "0x%02X\n", value)
	return nil
}
