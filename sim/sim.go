// Package sim simulates the NVIC register block on a volatile.Bus so the
// driver can run off-target. It honors the write-1-to-set/clear semantics,
// the read-only active flags, the implemented priority bits and the AIRCR
// write key, and logs every access it sees.
package sim

import (
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"omibyte.io/nvic/irq"
	"omibyte.io/nvic/nvic"
)

type Op int

const (
	Load Op = iota
	Store
)

func (o Op) String() string {
	if o == Store {
		return "store"
	}
	return "load"
}

// Access is one bus transaction as seen by the simulator.
type Access struct {
	Op    Op
	Width int
	Addr  uintptr
	Value uint32
}

func (a Access) String() string {
	return fmt.Sprintf("%-5s %2d-bit 0x%08X = 0x%0*X", a.Op, a.Width, a.Addr, a.Width/4, a.Value)
}

const (
	aircrSysResetReq = 1 << 2
	aircrPrigroup    = 0x700
)

type Option func(*NVIC)

// WithPriorityBits makes the priority bytes keep only the top n bits, as
// the silicon does. The default keeps all eight. n is clamped to 0..8.
func WithPriorityBits(n int) Option {
	if n > 8 {
		n = 8
	} else if n < 0 {
		n = 0
	}
	return func(s *NVIC) {
		s.prioMask = uint8(0xFF << (8 - n))
	}
}

// NVIC is a simulated register block. It is safe for concurrent use.
type NVIC struct {
	mu       sync.Mutex
	layout   nvic.Layout
	prioMask uint8

	enabled  []uint32
	pending  []uint32
	active   []uint32
	priority []uint8
	aircr    uint32

	mem map[uintptr]uint8
	log []Access
}

func New(layout nvic.Layout, opts ...Option) *NVIC {
	if layout == (nvic.Layout{}) {
		layout = nvic.DefaultLayout
	}
	s := &NVIC{
		layout:   layout,
		prioMask: 0xFF,
		mem:      make(map[uintptr]uint8),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset()
	return s
}

func (s *NVIC) reset() {
	banks := s.layout.Banks()
	s.enabled = make([]uint32, banks)
	s.pending = make([]uint32, banks)
	s.active = make([]uint32, banks)
	s.priority = make([]uint8, s.layout.Lines)
	s.aircr = 0
}

// implemented is the mask of bits in bank that correspond to real lines.
func (s *NVIC) implemented(bank int) uint32 {
	n := s.layout.Lines - bank*32
	if n >= 32 {
		return 0xFFFFFFFF
	}
	return 1<<uint(n) - 1
}

// bank maps addr to a bank of the 32-bit register array at offset. lane is
// the bit shift of addr within its word.
func (s *NVIC) bank(addr uintptr, offset uintptr) (bank int, lane uint, ok bool) {
	base := s.layout.Base + offset
	if addr < base || addr >= base+uintptr(4*s.layout.Banks()) {
		return 0, 0, false
	}
	rel := addr - base
	return int(rel / 4), uint(rel%4) * 8, true
}

func (s *NVIC) priorityIndex(addr uintptr) (int, bool) {
	base := s.layout.Base + nvic.OffsetIPR
	words := (s.layout.Lines + 3) / 4
	if addr < base || addr >= base+uintptr(4*words) {
		return 0, false
	}
	return int(addr - base), true
}

func widthMask(width int) uint32 {
	if width >= 32 {
		return 0xFFFFFFFF
	}
	return 1<<uint(width) - 1
}

func (s *NVIC) load(addr uintptr, width int) uint32 {
	mask := widthMask(width)
	var value uint32

	if bank, lane, ok := s.bank(addr, nvic.OffsetISER); ok {
		value = s.enabled[bank] >> lane
	} else if bank, lane, ok := s.bank(addr, nvic.OffsetICER); ok {
		value = s.enabled[bank] >> lane
	} else if bank, lane, ok := s.bank(addr, nvic.OffsetISPR); ok {
		value = s.pending[bank] >> lane
	} else if bank, lane, ok := s.bank(addr, nvic.OffsetICPR); ok {
		value = s.pending[bank] >> lane
	} else if bank, lane, ok := s.bank(addr, nvic.OffsetIABR); ok {
		value = s.active[bank] >> lane
	} else if _, ok := s.priorityIndex(addr); ok {
		for i := 0; i < width/8; i++ {
			if idx, ok := s.priorityIndex(addr + uintptr(i)); ok && idx < s.layout.Lines {
				value |= uint32(s.priority[idx]) << (8 * i)
			}
		}
	} else if addr&^3 == s.layout.AIRCR {
		word := uint32(nvic.VectKeyStat)<<16 | s.aircr&aircrPrigroup
		value = word >> (uint(addr&3) * 8)
	} else {
		for i := 0; i < width/8; i++ {
			value |= uint32(s.mem[addr+uintptr(i)]) << (8 * i)
		}
	}

	value &= mask
	s.log = append(s.log, Access{Load, width, addr, value})
	return value
}

func (s *NVIC) store(addr uintptr, width int, value uint32) {
	value &= widthMask(width)
	s.log = append(s.log, Access{Store, width, addr, value})

	if bank, lane, ok := s.bank(addr, nvic.OffsetISER); ok {
		s.enabled[bank] |= value << lane & s.implemented(bank)
	} else if bank, lane, ok := s.bank(addr, nvic.OffsetICER); ok {
		s.enabled[bank] &^= value << lane
	} else if bank, lane, ok := s.bank(addr, nvic.OffsetISPR); ok {
		s.pending[bank] |= value << lane & s.implemented(bank)
	} else if bank, lane, ok := s.bank(addr, nvic.OffsetICPR); ok {
		s.pending[bank] &^= value << lane
	} else if _, _, ok := s.bank(addr, nvic.OffsetIABR); ok {
		// Read-only.
	} else if _, ok := s.priorityIndex(addr); ok {
		for i := 0; i < width/8; i++ {
			if idx, ok := s.priorityIndex(addr + uintptr(i)); ok && idx < s.layout.Lines {
				s.priority[idx] = uint8(value>>(8*i)) & s.prioMask
			}
		}
	} else if addr&^3 == s.layout.AIRCR {
		// Only a full-word write can carry the key.
		if width != 32 || addr != s.layout.AIRCR || value>>16 != nvic.VectKey {
			return
		}
		if value&aircrSysResetReq != 0 {
			s.reset()
			return
		}
		s.aircr = value & aircrPrigroup
	} else {
		for i := 0; i < width/8; i++ {
			s.mem[addr+uintptr(i)] = uint8(value >> (8 * i))
		}
	}
}

func (s *NVIC) LoadUint8(addr uintptr) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint8(s.load(addr, 8))
}

func (s *NVIC) StoreUint8(addr uintptr, value uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(addr, 8, uint32(value))
}

func (s *NVIC) LoadUint16(addr uintptr) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint16(s.load(addr, 16))
}

func (s *NVIC) StoreUint16(addr uintptr, value uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(addr, 16, uint32(value))
}

func (s *NVIC) LoadUint32(addr uintptr) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(addr, 32)
}

func (s *NVIC) StoreUint32(addr uintptr, value uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(addr, 32, value)
}

func (s *NVIC) check(line irq.Line) (int, uint32, error) {
	if int(line) >= s.layout.Lines {
		return 0, 0, fmt.Errorf("%w: %d", nvic.ErrInvalidLine, line)
	}
	return int(line) / 32, 1 << (uint(line) % 32), nil
}

// Raise latches line as pending, as its peripheral would.
func (s *NVIC) Raise(line irq.Line) error {
	bank, bit, err := s.check(line)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[bank] |= bit
	return nil
}

// Enter models exception entry for line: the pending flag is consumed and
// the active flag set. No handler runs.
func (s *NVIC) Enter(line irq.Line) error {
	bank, bit, err := s.check(line)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[bank] &^= bit
	s.active[bank] |= bit
	return nil
}

// Exit models the return from the handler of line.
func (s *NVIC) Exit(line irq.Line) error {
	bank, bit, err := s.check(line)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[bank] &^= bit
	return nil
}

// State is a copy of the simulated register contents.
type State struct {
	Enabled  []uint32
	Pending  []uint32
	Active   []uint32
	Priority []uint8
	Prigroup uint32
}

func (s *NVIC) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Enabled:  slices.Clone(s.enabled),
		Pending:  slices.Clone(s.pending),
		Active:   slices.Clone(s.active),
		Priority: slices.Clone(s.priority),
		Prigroup: s.aircr & aircrPrigroup,
	}
}

// Accesses returns every access since construction or the last ResetLog.
func (s *NVIC) Accesses() []Access {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.log)
}

// Stores returns only the store accesses.
func (s *NVIC) Stores() []Access {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stores []Access
	for _, a := range s.log {
		if a.Op == Store {
			stores = append(stores, a)
		}
	}
	return stores
}

func (s *NVIC) ResetLog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = nil
}

// Cell is one byte of plain memory outside the NVIC registers.
type Cell struct {
	Addr  uintptr
	Value uint8
}

// Memory lists the plain memory bytes that have been written, by address.
func (s *NVIC) Memory() []Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	addrs := maps.Keys(s.mem)
	slices.Sort(addrs)
	cells := make([]Cell, len(addrs))
	for i, addr := range addrs {
		cells[i] = Cell{addr, s.mem[addr]}
	}
	return cells
}
