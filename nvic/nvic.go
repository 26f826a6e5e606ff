// Package nvic drives the Cortex-M nested vectored interrupt controller of
// the STM32F10x family.
//
// Each line-level operation validates its arguments and then performs
// exactly one register access. Enable/disable and pending set/clear go
// through separate write-1 registers, so no operation ever reads a register
// back before writing it. The driver keeps no state of its own and does no
// locking; callers that build multi-step sequences on top of it from both
// thread and handler context must mask the line themselves.
package nvic

import (
	"fmt"

	"omibyte.io/nvic/irq"
	"omibyte.io/nvic/register"
	"omibyte.io/nvic/volatile"
)

// Register offsets from the NVIC base.
const (
	OffsetISER = 0x000
	OffsetICER = 0x080
	OffsetISPR = 0x100
	OffsetICPR = 0x180
	OffsetIABR = 0x200
	OffsetIPR  = 0x300
)

// AIRCR write key (VECTKEY, bits 31:16) and the value it reads back as
// (VECTKEYSTAT).
const (
	VectKey     = 0x05FA
	VectKeyStat = 0xFA05
)

const (
	aircrKeyShift       = 16
	aircrPrigroupMask   = 0x700
	linesPerBank        = 32
	defaultPriorityBits = 4
)

// Layout places the controller in the address space and sizes it.
type Layout struct {
	// Lines is the number of implemented external interrupt lines.
	Lines int

	// PriorityBits is the number of implemented priority bits, counted from
	// bit 7 of each priority byte.
	PriorityBits int

	// Base is the address of ISER0.
	Base uintptr

	// AIRCR is the address of the application interrupt and reset control
	// register in the system control block.
	AIRCR uintptr
}

var DefaultLayout = Layout{
	Lines:        irq.Count,
	PriorityBits: defaultPriorityBits,
	Base:         0xE000E100,
	AIRCR:        0xE000ED0C,
}

// Banks is the number of 32-line register banks.
func (l Layout) Banks() int {
	return (l.Lines + linesPerBank - 1) / linesPerBank
}

func (l Layout) validate() error {
	if l.Lines < 1 || l.Lines > irq.Count {
		return fmt.Errorf("%w: %d lines", ErrInvalidLayout, l.Lines)
	}
	if l.PriorityBits < 1 || l.PriorityBits > 8 {
		return fmt.Errorf("%w: %d priority bits", ErrInvalidLayout, l.PriorityBits)
	}
	if l.Base == 0 || l.AIRCR == 0 {
		return fmt.Errorf("%w: missing register address", ErrInvalidLayout)
	}
	return nil
}

type Options struct {
	// Layout defaults to DefaultLayout.
	Layout Layout

	// DefaultGrouping is written by Init. Defaults to Group4Sub0.
	DefaultGrouping GroupingMode
}

// Controller is a handle to one NVIC register block.
type Controller struct {
	layout   Layout
	grouping GroupingMode

	iser  []register.Set32
	icer  []register.Clear32
	ispr  []register.Set32
	icpr  []register.Clear32
	iabr  []register.RO32
	ipr   []register.RW8
	aircr register.RW32
}

// New builds a controller on bus. Nothing is written until a method is
// called.
func New(bus volatile.Bus, opts Options) (*Controller, error) {
	layout := opts.Layout
	if layout == (Layout{}) {
		layout = DefaultLayout
	}
	if err := layout.validate(); err != nil {
		return nil, err
	}

	grouping := opts.DefaultGrouping
	if grouping == 0 {
		grouping = Group4Sub0
	}
	if !grouping.Valid() {
		return nil, fmt.Errorf("%w: %#x", ErrInvalidGroupingMode, uint32(grouping))
	}

	c := &Controller{
		layout:   layout,
		grouping: grouping,
		aircr:    register.NewRW32(bus, layout.AIRCR, "AIRCR"),
	}

	for n := 0; n < layout.Banks(); n++ {
		offset := uintptr(n * 4)
		c.iser = append(c.iser, register.NewSet32(bus, layout.Base+OffsetISER+offset, fmt.Sprintf("ISER%d", n)))
		c.icer = append(c.icer, register.NewClear32(bus, layout.Base+OffsetICER+offset, fmt.Sprintf("ICER%d", n)))
		c.ispr = append(c.ispr, register.NewSet32(bus, layout.Base+OffsetISPR+offset, fmt.Sprintf("ISPR%d", n)))
		c.icpr = append(c.icpr, register.NewClear32(bus, layout.Base+OffsetICPR+offset, fmt.Sprintf("ICPR%d", n)))
		c.iabr = append(c.iabr, register.NewRO32(bus, layout.Base+OffsetIABR+offset, fmt.Sprintf("IABR%d", n)))
	}

	for n := 0; n < layout.Lines; n++ {
		c.ipr = append(c.ipr, register.NewRW8(bus, layout.Base+OffsetIPR+uintptr(n), fmt.Sprintf("IPR%d", n)))
	}

	return c, nil
}

func (c *Controller) Layout() Layout {
	return c.layout
}

// locate validates line and returns its bank and bit mask.
func (c *Controller) locate(line irq.Line) (bank int, mask uint32, err error) {
	if int(line) >= c.layout.Lines {
		return 0, 0, fmt.Errorf("%w: %d (controller has %d lines)", ErrInvalidLine, line, c.layout.Lines)
	}
	return int(line) / linesPerBank, 1 << (uint(line) % linesPerBank), nil
}

// Init seeds the priority grouping with Options.DefaultGrouping. Enable,
// pending and priority state are left at whatever the hardware holds.
func (c *Controller) Init() error {
	return c.SetPriorityGrouping(c.grouping)
}

func (c *Controller) Enable(line irq.Line) error {
	bank, mask, err := c.locate(line)
	if err != nil {
		return err
	}
	c.iser[bank].Set(mask)
	return nil
}

func (c *Controller) Disable(line irq.Line) error {
	bank, mask, err := c.locate(line)
	if err != nil {
		return err
	}
	c.icer[bank].Clear(mask)
	return nil
}

// SetPending marks line pending as if its peripheral had signaled it.
func (c *Controller) SetPending(line irq.Line) error {
	bank, mask, err := c.locate(line)
	if err != nil {
		return err
	}
	c.ispr[bank].Set(mask)
	return nil
}

func (c *Controller) ClearPending(line irq.Line) error {
	bank, mask, err := c.locate(line)
	if err != nil {
		return err
	}
	c.icpr[bank].Clear(mask)
	return nil
}

// IsActive reports whether the handler for line is executing. The flag is
// maintained by the hardware.
func (c *Controller) IsActive(line irq.Line) (bool, error) {
	bank, mask, err := c.locate(line)
	if err != nil {
		return false, err
	}
	return c.iabr[bank].Load()&mask != 0, nil
}

func (c *Controller) IsEnabled(line irq.Line) (bool, error) {
	bank, mask, err := c.locate(line)
	if err != nil {
		return false, err
	}
	return c.iser[bank].Load()&mask != 0, nil
}

func (c *Controller) IsPending(line irq.Line) (bool, error) {
	bank, mask, err := c.locate(line)
	if err != nil {
		return false, err
	}
	return c.ispr[bank].Load()&mask != 0, nil
}

// SetPriority writes the whole priority byte for line. The value is not
// masked: bits below the implemented priority bits are ignored by the
// hardware, so any byte is accepted.
func (c *Controller) SetPriority(line irq.Line, priority uint8) error {
	if _, _, err := c.locate(line); err != nil {
		return err
	}
	c.ipr[line].Store(priority)
	return nil
}

func (c *Controller) Priority(line irq.Line) (uint8, error) {
	if _, _, err := c.locate(line); err != nil {
		return 0, err
	}
	return c.ipr[line].Load(), nil
}

// SetGroupPriority encodes group and sub under the current grouping mode and
// writes the result with SetPriority.
func (c *Controller) SetGroupPriority(line irq.Line, group, sub uint8) error {
	if _, _, err := c.locate(line); err != nil {
		return err
	}
	mode, err := c.PriorityGrouping()
	if err != nil {
		return err
	}
	value, err := EncodePriority(mode, c.layout.PriorityBits, group, sub)
	if err != nil {
		return err
	}
	c.ipr[line].Store(value)
	return nil
}

// SetPriorityGrouping writes the key and the mode to AIRCR in one store.
// The register drops writes whose key field does not match, so the two must
// never be split.
func (c *Controller) SetPriorityGrouping(mode GroupingMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %#x", ErrInvalidGroupingMode, uint32(mode))
	}
	c.aircr.Store(VectKey<<aircrKeyShift | uint32(mode))
	return nil
}

// PriorityGrouping reads the active grouping mode back from AIRCR.
func (c *Controller) PriorityGrouping() (GroupingMode, error) {
	mode := GroupingMode(c.aircr.Load() & aircrPrigroupMask)
	if mode.Valid() {
		return mode, nil
	}
	// PRIGROUP 0..2 (the reset value is 0) behave like 4g0s when no more
	// than four priority bits are implemented.
	if mode.GroupBits(c.layout.PriorityBits) == Group4Sub0.GroupBits(c.layout.PriorityBits) {
		return Group4Sub0, nil
	}
	return 0, fmt.Errorf("%w: PRIGROUP %d", ErrInvalidGroupingMode, mode.prigroup())
}

// ClearAllPending clears every implemented pending flag, one store per bank.
func (c *Controller) ClearAllPending() {
	for bank, reg := range c.icpr {
		reg.Clear(c.bankMask(bank))
	}
}

func (c *Controller) bankMask(bank int) uint32 {
	n := c.layout.Lines - bank*linesPerBank
	if n >= linesPerBank {
		return 0xFFFFFFFF
	}
	return 1<<uint(n) - 1
}

// Registers lists every register the controller touches in address order.
func (c *Controller) Registers() []register.Desc {
	var regs []register.Desc
	for _, r := range c.iser {
		regs = append(regs, r.Info())
	}
	for _, r := range c.icer {
		regs = append(regs, r.Info())
	}
	for _, r := range c.ispr {
		regs = append(regs, r.Info())
	}
	for _, r := range c.icpr {
		regs = append(regs, r.Info())
	}
	for _, r := range c.iabr {
		regs = append(regs, r.Info())
	}
	for _, r := range c.ipr {
		regs = append(regs, r.Info())
	}
	return append(regs, c.aircr.Info())
}
