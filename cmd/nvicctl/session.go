package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"omibyte.io/nvic/nvic"
	"omibyte.io/nvic/script"
	"omibyte.io/nvic/sim"
	"omibyte.io/nvic/targets"
)

const defaultChip = "stm32f10x-hd"

func addChipFlag(flags *pflag.FlagSet, chip *string) {
	flags.StringVarP(chip, "chip", "c", defaultChip, "target chip or series")
}

// groupingValue lets --mode take "2g2s" or "0x500".
type groupingValue struct {
	mode *nvic.GroupingMode
}

var _ pflag.Value = groupingValue{}

func (v groupingValue) String() string {
	if v.mode == nil || *v.mode == 0 {
		return ""
	}
	return v.mode.String()
}

func (v groupingValue) Set(s string) error {
	mode, err := nvic.ParseGroupingMode(s)
	if err != nil {
		return err
	}
	*v.mode = mode
	return nil
}

func (v groupingValue) Type() string {
	return "grouping"
}

// session is a controller wired to a simulated register block for one
// target.
type session struct {
	target targets.TargetInfo
	hw     *sim.NVIC
	ctrl   *nvic.Controller
}

func newSession(chip string) (*session, error) {
	target, err := targets.All().Find(chip)
	if err != nil {
		return nil, err
	}
	hw := sim.New(target.Layout(), sim.WithPriorityBits(target.PriorityBits))
	ctrl, err := nvic.New(hw, target.Options())
	if err != nil {
		return nil, err
	}
	return &session{target, hw, ctrl}, nil
}

// loadScript opens path and picks the chip: an explicit --chip wins over the
// script header.
func loadScript(path string, chip string, chipSet bool) (*script.Script, *session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	s, err := script.Load(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if !chipSet && s.Chip != "" {
		chip = s.Chip
	}
	sess, err := newSession(chip)
	if err != nil {
		return nil, nil, err
	}
	return s, sess, nil
}
