package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"omibyte.io/nvic/preempt"
	"omibyte.io/nvic/script"
)

var (
	analyzeOpts = struct {
		chip string
	}{}

	analyzeCmd = &cobra.Command{
		Use:   "analyze <script.yaml>",
		Short: "Run a script and report the resulting preemption structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, sess, err := loadScript(args[0], analyzeOpts.chip, cmd.Flags().Changed("chip"))
			if err != nil {
				return err
			}
			return analyzeScript(cmd.OutOrStdout(), s, sess)
		},
	}
)

func init() {
	addChipFlag(analyzeCmd.Flags(), &analyzeOpts.chip)
}

func analyzeScript(w io.Writer, s *script.Script, sess *session) error {
	if _, err := s.Run(sess.ctrl, sess.hw); err != nil {
		return err
	}
	report, err := preempt.Analyze(sess.ctrl)
	if err != nil {
		return err
	}
	fmt.Fprint(w, report)
	for _, e := range report.Entries {
		if len(e.Preempts) > 0 {
			fmt.Fprintf(w, "%s -> %v\n", e.Line, e.Preempts)
		}
	}
	return nil
}
