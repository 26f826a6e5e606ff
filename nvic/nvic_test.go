package nvic_test

import (
	"errors"
	"testing"

	"omibyte.io/nvic/irq"
	"omibyte.io/nvic/nvic"
	"omibyte.io/nvic/sim"
)

const (
	iser0 = 0xE000E100
	iser1 = 0xE000E104
	icer0 = 0xE000E180
	icer1 = 0xE000E184
	ispr0 = 0xE000E200
	icpr1 = 0xE000E284
	ipr0  = 0xE000E400
	aircr = 0xE000ED0C
)

func newController(t *testing.T, opts ...sim.Option) (*nvic.Controller, *sim.NVIC) {
	t.Helper()
	hw := sim.New(nvic.DefaultLayout, opts...)
	c, err := nvic.New(hw, nvic.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return c, hw
}

func singleStore(t *testing.T, hw *sim.NVIC) sim.Access {
	t.Helper()
	stores := hw.Stores()
	if len(stores) != 1 {
		t.Fatalf("expected exactly one store, got %v", stores)
	}
	return stores[0]
}

func TestEnableBankAndBit(t *testing.T) {
	tests := []struct {
		line irq.Line
		addr uintptr
		bit  uint32
	}{
		{irq.WWDG, iser0, 1 << 0},
		{irq.RTC, iser0, 1 << 3},
		{irq.I2C1_EV, iser0, 1 << 31},
		{irq.I2C1_ER, iser1, 1 << 0},
		{irq.USART1, iser1, 1 << 5},
		{irq.DMA2_Channel4_5, iser1, 1 << 27},
	}

	for _, test := range tests {
		t.Run(test.line.String(), func(t *testing.T) {
			c, hw := newController(t)
			if err := c.Enable(test.line); err != nil {
				t.Fatal(err)
			}
			store := singleStore(t, hw)
			if store.Addr != test.addr || store.Value != test.bit || store.Width != 32 {
				t.Errorf("store = %v, want 0x%08X = 0x%08X", store, test.addr, test.bit)
			}

			state := hw.State()
			bank := int(test.line) / 32
			if state.Enabled[bank] != test.bit || state.Enabled[1-bank] != 0 {
				t.Errorf("enabled = %#x, want only %#x in bank %d", state.Enabled, test.bit, bank)
			}
		})
	}
}

func TestEnableLeavesOtherLines(t *testing.T) {
	c, hw := newController(t)
	for _, line := range irq.All() {
		hw.ResetLog()
		before := hw.State().Enabled
		if err := c.Enable(line); err != nil {
			t.Fatal(err)
		}
		after := hw.State().Enabled
		bank, bit := int(line)/32, uint32(1)<<(uint(line)%32)
		for b := range after {
			want := before[b]
			if b == bank {
				want |= bit
			}
			if after[b] != want {
				t.Fatalf("enable %s: bank %d = %#x, want %#x", line, b, after[b], want)
			}
		}
		if on, _ := c.IsEnabled(line); !on {
			t.Errorf("IsEnabled(%s) = false", line)
		}
	}
}

func TestDisableUsesClearRegister(t *testing.T) {
	c, hw := newController(t)
	for _, line := range []irq.Line{irq.TIM2, irq.USART1, irq.SPI1} {
		if err := c.Enable(line); err != nil {
			t.Fatal(err)
		}
	}
	hw.ResetLog()

	if err := c.Disable(irq.USART1); err != nil {
		t.Fatal(err)
	}

	accesses := hw.Accesses()
	if len(accesses) != 1 {
		t.Fatalf("disable issued %v, want a single store with no read", accesses)
	}
	if a := accesses[0]; a.Op != sim.Store || a.Addr != icer1 || a.Value != 1<<5 {
		t.Errorf("access = %v, want store to ICER1 of bit 5", a)
	}

	for line, want := range map[irq.Line]bool{irq.TIM2: true, irq.USART1: false, irq.SPI1: true} {
		on, err := c.IsEnabled(line)
		if err != nil {
			t.Fatal(err)
		}
		if on != want {
			t.Errorf("IsEnabled(%s) = %v, want %v", line, on, want)
		}
	}
}

func TestDisableBankZero(t *testing.T) {
	c, hw := newController(t)
	if err := c.Disable(irq.EXTI0); err != nil {
		t.Fatal(err)
	}
	if store := singleStore(t, hw); store.Addr != icer0 || store.Value != 1<<6 {
		t.Errorf("store = %v", store)
	}
}

func TestPendingIsNotActive(t *testing.T) {
	c, hw := newController(t)
	if err := c.SetPending(irq.EXTI3); err != nil {
		t.Fatal(err)
	}
	if store := singleStore(t, hw); store.Addr != ispr0 || store.Value != 1<<9 {
		t.Errorf("store = %v", store)
	}

	pending, err := c.IsPending(irq.EXTI3)
	if err != nil {
		t.Fatal(err)
	}
	active, err := c.IsActive(irq.EXTI3)
	if err != nil {
		t.Fatal(err)
	}
	if !pending || active {
		t.Errorf("pending = %v, active = %v; want true, false", pending, active)
	}
}

func TestClearPending(t *testing.T) {
	c, hw := newController(t)
	if err := c.SetPending(irq.UART5); err != nil {
		t.Fatal(err)
	}
	hw.ResetLog()
	if err := c.ClearPending(irq.UART5); err != nil {
		t.Fatal(err)
	}
	if store := singleStore(t, hw); store.Addr != icpr1 || store.Value != 1<<21 {
		t.Errorf("store = %v", store)
	}
	if pending, _ := c.IsPending(irq.UART5); pending {
		t.Error("pending flag still set")
	}
}

func TestIsActiveFollowsHardware(t *testing.T) {
	c, hw := newController(t)
	if err := c.SetPending(irq.TIM3); err != nil {
		t.Fatal(err)
	}
	if err := hw.Enter(irq.TIM3); err != nil {
		t.Fatal(err)
	}

	hw.ResetLog()
	active, err := c.IsActive(irq.TIM3)
	if err != nil {
		t.Fatal(err)
	}
	if !active {
		t.Error("IsActive = false during handler")
	}
	if accesses := hw.Accesses(); len(accesses) != 1 || accesses[0].Op != sim.Load {
		t.Errorf("IsActive issued %v, want a single load", accesses)
	}
	if pending, _ := c.IsPending(irq.TIM3); pending {
		t.Error("entry did not consume the pending flag")
	}

	if err := hw.Exit(irq.TIM3); err != nil {
		t.Fatal(err)
	}
	if active, _ := c.IsActive(irq.TIM3); active {
		t.Error("IsActive = true after exit")
	}
}

func TestPriorityRoundTrip(t *testing.T) {
	c, hw := newController(t)
	for _, line := range irq.All() {
		for v := 0; v <= 0xFF; v++ {
			hw.ResetLog()
			if err := c.SetPriority(line, uint8(v)); err != nil {
				t.Fatal(err)
			}
			store := singleStore(t, hw)
			if store.Width != 8 || store.Addr != ipr0+uintptr(line) || store.Value != uint32(v) {
				t.Fatalf("SetPriority(%s, %#x) store = %v", line, v, store)
			}
			got, err := c.Priority(line)
			if err != nil {
				t.Fatal(err)
			}
			if got != uint8(v) {
				t.Fatalf("Priority(%s) = %#x, want %#x", line, got, v)
			}
		}
	}
}

func TestPriorityLowBitsIgnoredBySilicon(t *testing.T) {
	c, _ := newController(t, sim.WithPriorityBits(4))
	if err := c.SetPriority(irq.SPI1, 0x5F); err != nil {
		t.Fatal(err)
	}
	if got, _ := c.Priority(irq.SPI1); got != 0x50 {
		t.Errorf("Priority = %#x, want 0x50", got)
	}
}

func TestSetPriorityGrouping(t *testing.T) {
	modes := []struct {
		mode nvic.GroupingMode
		word uint32
	}{
		{nvic.Group4Sub0, 0x05FA0300},
		{nvic.Group3Sub1, 0x05FA0400},
		{nvic.Group2Sub2, 0x05FA0500},
		{nvic.Group1Sub3, 0x05FA0600},
		{nvic.Group0Sub4, 0x05FA0700},
	}
	for _, test := range modes {
		t.Run(test.mode.String(), func(t *testing.T) {
			c, hw := newController(t)
			if err := c.SetPriorityGrouping(test.mode); err != nil {
				t.Fatal(err)
			}
			store := singleStore(t, hw)
			if store.Addr != aircr || store.Width != 32 || store.Value != test.word {
				t.Errorf("store = %v, want 0x%08X", store, test.word)
			}
			mode, err := c.PriorityGrouping()
			if err != nil {
				t.Fatal(err)
			}
			if mode != test.mode {
				t.Errorf("PriorityGrouping() = %s", mode)
			}
		})
	}
}

func TestGroupingWriteWithoutKeyIsIgnored(t *testing.T) {
	c, hw := newController(t)
	if err := c.SetPriorityGrouping(nvic.Group2Sub2); err != nil {
		t.Fatal(err)
	}
	before := hw.LoadUint32(aircr)

	for _, word := range []uint32{0x00000700, 0x05FB0700, 0xFA050700} {
		hw.StoreUint32(aircr, word)
		if after := hw.LoadUint32(aircr); after != before {
			t.Errorf("write %#x changed AIRCR from %#x to %#x", word, before, after)
		}
	}
	// A split write cannot carry the key with the mode.
	hw.StoreUint16(aircr+2, 0x05FA)
	hw.StoreUint16(aircr, 0x0700)
	if after := hw.LoadUint32(aircr); after != before {
		t.Errorf("split write changed AIRCR from %#x to %#x", before, after)
	}
	if mode, _ := c.PriorityGrouping(); mode != nvic.Group2Sub2 {
		t.Errorf("PriorityGrouping() = %s", mode)
	}
}

func TestRejectionWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		op   func(c *nvic.Controller) error
		want error
	}{
		{"enable(60)", func(c *nvic.Controller) error { return c.Enable(60) }, nvic.ErrInvalidLine},
		{"enable(255)", func(c *nvic.Controller) error { return c.Enable(255) }, nvic.ErrInvalidLine},
		{"disable(60)", func(c *nvic.Controller) error { return c.Disable(60) }, nvic.ErrInvalidLine},
		{"set_pending(64)", func(c *nvic.Controller) error { return c.SetPending(64) }, nvic.ErrInvalidLine},
		{"clear_pending(200)", func(c *nvic.Controller) error { return c.ClearPending(200) }, nvic.ErrInvalidLine},
		{"set_priority(60)", func(c *nvic.Controller) error { return c.SetPriority(60, 0x10) }, nvic.ErrInvalidLine},
		{"is_active(61)", func(c *nvic.Controller) error { _, err := c.IsActive(61); return err }, nvic.ErrInvalidLine},
		{"grouping(0xDEAD)", func(c *nvic.Controller) error { return c.SetPriorityGrouping(0xDEAD) }, nvic.ErrInvalidGroupingMode},
		{"grouping(0x200)", func(c *nvic.Controller) error { return c.SetPriorityGrouping(0x200) }, nvic.ErrInvalidGroupingMode},
		{"grouping(0)", func(c *nvic.Controller) error { return c.SetPriorityGrouping(0) }, nvic.ErrInvalidGroupingMode},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, hw := newController(t)
			if err := test.op(c); !errors.Is(err, test.want) {
				t.Fatalf("error = %v, want %v", err, test.want)
			}
			if accesses := hw.Accesses(); len(accesses) != 0 {
				t.Errorf("rejected call touched the bus: %v", accesses)
			}
		})
	}
}

func TestInitSeedsGroupingOnly(t *testing.T) {
	hw := sim.New(nvic.DefaultLayout)
	c, err := nvic.New(hw, nvic.Options{DefaultGrouping: nvic.Group1Sub3})
	if err != nil {
		t.Fatal(err)
	}
	if err := hw.Raise(irq.ADC1_2); err != nil {
		t.Fatal(err)
	}
	hw.StoreUint32(iser0, 1<<18)
	hw.ResetLog()

	if err := c.Init(); err != nil {
		t.Fatal(err)
	}
	if store := singleStore(t, hw); store.Addr != aircr || store.Value != 0x05FA0600 {
		t.Errorf("store = %v", store)
	}
	if on, _ := c.IsEnabled(irq.ADC1_2); !on {
		t.Error("Init disabled a line")
	}
	if pending, _ := c.IsPending(irq.ADC1_2); !pending {
		t.Error("Init cleared a pending flag")
	}
}

func TestClearAllPending(t *testing.T) {
	c, hw := newController(t)
	for _, line := range []irq.Line{irq.WWDG, irq.I2C1_EV, irq.I2C1_ER, irq.DMA2_Channel4_5} {
		if err := c.SetPending(line); err != nil {
			t.Fatal(err)
		}
	}
	hw.ResetLog()
	c.ClearAllPending()

	stores := hw.Stores()
	if len(stores) != 2 {
		t.Fatalf("stores = %v", stores)
	}
	if stores[0].Value != 0xFFFFFFFF || stores[1].Value != 0x0FFFFFFF {
		t.Errorf("masks = %#x, %#x", stores[0].Value, stores[1].Value)
	}
	state := hw.State()
	if state.Pending[0] != 0 || state.Pending[1] != 0 {
		t.Errorf("pending = %#x", state.Pending)
	}
}

func TestSmallerLayout(t *testing.T) {
	layout := nvic.DefaultLayout
	layout.Lines = 43
	hw := sim.New(layout)
	c, err := nvic.New(hw, nvic.Options{Layout: layout})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Enable(irq.USBWakeup); err != nil {
		t.Fatal(err)
	}
	if err := c.Enable(irq.ADC3); !errors.Is(err, nvic.ErrInvalidLine) {
		t.Errorf("Enable(ADC3) error = %v", err)
	}
	if n := len(c.Registers()); n != 2*5+43+1 {
		t.Errorf("len(Registers()) = %d", n)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	hw := sim.New(nvic.DefaultLayout)
	if _, err := nvic.New(hw, nvic.Options{DefaultGrouping: 0x800}); !errors.Is(err, nvic.ErrInvalidGroupingMode) {
		t.Errorf("error = %v", err)
	}
	layout := nvic.DefaultLayout
	layout.Lines = 61
	if _, err := nvic.New(hw, nvic.Options{Layout: layout}); !errors.Is(err, nvic.ErrInvalidLayout) {
		t.Errorf("error = %v", err)
	}
	layout = nvic.DefaultLayout
	layout.PriorityBits = 9
	if _, err := nvic.New(hw, nvic.Options{Layout: layout}); !errors.Is(err, nvic.ErrInvalidLayout) {
		t.Errorf("error = %v", err)
	}
}

func TestSetGroupPriority(t *testing.T) {
	c, _ := newController(t, sim.WithPriorityBits(4))
	if err := c.SetPriorityGrouping(nvic.Group2Sub2); err != nil {
		t.Fatal(err)
	}
	if err := c.SetGroupPriority(irq.USART2, 1, 3); err != nil {
		t.Fatal(err)
	}
	if got, _ := c.Priority(irq.USART2); got != 0x70 {
		t.Errorf("Priority = %#x, want 0x70", got)
	}
	if err := c.SetGroupPriority(irq.USART2, 4, 0); !errors.Is(err, nvic.ErrInvalidPriority) {
		t.Errorf("error = %v", err)
	}
}

func TestResetGroupingReadsAsAllGroup(t *testing.T) {
	c, _ := newController(t)
	mode, err := c.PriorityGrouping()
	if err != nil {
		t.Fatal(err)
	}
	if mode != nvic.Group4Sub0 {
		t.Errorf("PriorityGrouping() after reset = %s", mode)
	}
}
