package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"omibyte.io/nvic/irq"
	"omibyte.io/nvic/script"
)

var (
	runOpts = struct {
		chip  string
		trace bool
	}{}

	runCmd = &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a driver script against a simulated controller",
		Long: `Run executes the steps of a YAML script against a simulated register
block and prints the query results and the final state of every line that is
not at its reset value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, sess, err := loadScript(args[0], runOpts.chip, cmd.Flags().Changed("chip"))
			if err != nil {
				return err
			}
			return runScript(cmd.OutOrStdout(), s, sess, runOpts.trace)
		},
	}
)

func init() {
	addChipFlag(runCmd.Flags(), &runOpts.chip)
	runCmd.Flags().BoolVarP(&runOpts.trace, "trace", "t", false, "print every register store")
}

func runScript(w io.Writer, s *script.Script, sess *session, trace bool) error {
	results, err := s.Run(sess.ctrl, sess.hw)
	for _, r := range results {
		fmt.Fprintln(w, r)
	}
	if trace {
		fmt.Fprintln(w, "stores:")
		for _, a := range sess.hw.Stores() {
			fmt.Fprintln(w, " ", a)
		}
	}
	if err != nil {
		return err
	}
	printState(w, sess)
	return nil
}

func printState(w io.Writer, sess *session) {
	state := sess.hw.State()
	mode, err := sess.ctrl.PriorityGrouping()
	if err != nil {
		fmt.Fprintf(w, "grouping: %v\n", err)
	} else {
		fmt.Fprintf(w, "grouping: %s\n", mode)
	}

	flag := func(banks []uint32, line irq.Line) string {
		if banks[line/32]&(1<<(line%32)) != 0 {
			return "x"
		}
		return "."
	}

	fmt.Fprintf(w, "%-16s %s %s %s %s\n", "LINE", "E", "P", "A", "PRIO")
	for n := 0; n < sess.target.Lines; n++ {
		line := irq.Line(n)
		bank, bit := n/32, uint32(1)<<(n%32)
		if (state.Enabled[bank]|state.Pending[bank]|state.Active[bank])&bit == 0 && state.Priority[n] == 0 {
			continue
		}
		fmt.Fprintf(w, "%-16s %s %s %s 0x%02X\n", line,
			flag(state.Enabled, line), flag(state.Pending, line), flag(state.Active, line), state.Priority[n])
	}
}
