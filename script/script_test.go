package script

import (
	"errors"
	"strings"
	"testing"

	"omibyte.io/nvic/irq"
	"omibyte.io/nvic/nvic"
	"omibyte.io/nvic/sim"
)

func newSession(t *testing.T) (*nvic.Controller, *sim.NVIC) {
	t.Helper()
	hw := sim.New(nvic.DefaultLayout)
	c, err := nvic.New(hw, nvic.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return c, hw
}

func TestRun(t *testing.T) {
	s, err := Load(strings.NewReader(`
chip: stm32f103ze
grouping: 2g2s
steps:
  - {op: priority, line: USART1, group: 1, sub: 2}
  - {op: priority, line: 28, value: 0x40}
  - {op: enable, line: USART1}
  - {op: enable, line: TIM2}
  - {op: disable, line: TIM2}
  - {op: pend, line: EXTI0}
  - {op: pending, line: EXTI0}
  - {op: active, line: EXTI0}
  - {op: raise, line: USART1}
  - {op: enter, line: USART1}
  - {op: active, line: USART1}
  - {op: exit, line: USART1}
  - {op: active, line: USART1}
  - {op: enabled, line: TIM2}
  - {op: unpend, line: EXTI0}
  - {op: pending, line: EXTI0}
`))
	if err != nil {
		t.Fatal(err)
	}
	if s.Chip != "stm32f103ze" || s.Grouping == nil || *s.Grouping != nvic.Group2Sub2 {
		t.Errorf("header = %q %v", s.Chip, s.Grouping)
	}

	c, hw := newSession(t)
	results, err := s.Run(c, hw)
	if err != nil {
		t.Fatal(err)
	}

	want := []Result{
		{7, "pending", irq.EXTI0, true},
		{8, "active", irq.EXTI0, false},
		{11, "active", irq.USART1, true},
		{13, "active", irq.USART1, false},
		{14, "enabled", irq.TIM2, false},
		{16, "pending", irq.EXTI0, false},
	}
	if len(results) != len(want) {
		t.Fatalf("results = %v", results)
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("results[%d] = %v, want %v", i, results[i], want[i])
		}
	}

	state := hw.State()
	if state.Priority[irq.USART1] != 0x60 || state.Priority[irq.TIM2] != 0x40 {
		t.Errorf("priorities = %#x, %#x", state.Priority[irq.USART1], state.Priority[irq.TIM2])
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		hw   bool
		want error
	}{
		{"unknown op", `steps: [{op: reboot}]`, true, ErrUnknownOp},
		{"missing line", `steps: [{op: enable}]`, true, ErrMissingField},
		{"missing mode", `steps: [{op: grouping}]`, true, ErrMissingField},
		{"missing value", `steps: [{op: priority, line: RTC}]`, true, ErrMissingField},
		{"sub without group", `steps: [{op: priority, line: RTC, sub: 1}]`, true, ErrMissingField},
		{"value and group", `steps: [{op: priority, line: RTC, value: 0x40, group: 1}]`, true, ErrFieldConflict},
		{"value and sub", `steps: [{op: priority, line: RTC, value: 0x40, sub: 0}]`, true, ErrFieldConflict},
		{"no hardware", `steps: [{op: raise, line: RTC}]`, false, ErrNoHardware},
		{"bad group", `{grouping: 4g0s, steps: [{op: priority, line: RTC, group: 1, sub: 1}]}`, true, nvic.ErrInvalidPriority},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := Load(strings.NewReader(test.src))
			if err != nil {
				t.Fatal(err)
			}
			c, hw := newSession(t)
			if !test.hw {
				hw = nil
			}
			if _, err := s.Run(c, hw); !errors.Is(err, test.want) {
				t.Errorf("error = %v, want %v", err, test.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []string{
		`steps: [{op: enable, line: NOPE}]`,
		`steps: [{op: enable, line: 60}]`,
		`grouping: 0xDEAD`,
		`steps: [{op: enable, line: RTC, colour: red}]`,
	}
	for _, src := range tests {
		if _, err := Load(strings.NewReader(src)); !errors.Is(err, ErrScriptInvalid) {
			t.Errorf("Load(%q) error = %v", src, err)
		}
	}
}

func TestRunStopsAtFailingStep(t *testing.T) {
	s, err := Load(strings.NewReader(`
steps:
  - {op: enable, line: RTC}
  - {op: bogus}
  - {op: enable, line: TIM2}
`))
	if err != nil {
		t.Fatal(err)
	}
	c, _ := newSession(t)
	_, err = s.Run(c, nil)
	if err == nil || !strings.Contains(err.Error(), "step 2 (bogus)") {
		t.Fatalf("error = %v", err)
	}
	if on, _ := c.IsEnabled(irq.RTC); !on {
		t.Error("step 1 did not run")
	}
	if on, _ := c.IsEnabled(irq.TIM2); on {
		t.Error("step 3 ran after a failure")
	}
}
