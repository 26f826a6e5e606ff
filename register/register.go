// Package register wraps bus addresses in typed handles whose Go type fixes
// the access mode. A write-1-to-clear register cannot be stored to directly
// and a read-only register cannot be written at all.
package register

import (
	"fmt"

	"omibyte.io/nvic/volatile"
)

type Access int

const (
	ReadOnly Access = iota
	ReadWrite
	WriteOneToSet
	WriteOneToClear
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "ro"
	case ReadWrite:
		return "rw"
	case WriteOneToSet:
		return "w1s"
	case WriteOneToClear:
		return "w1c"
	default:
		return fmt.Sprintf("Access(%d)", int(a))
	}
}

// Desc describes a register for listings.
type Desc struct {
	Name    string
	Address uintptr
	Width   int
	Access  Access
}

func (d Desc) String() string {
	return fmt.Sprintf("%-10s 0x%08X %2d-bit %s", d.Name, d.Address, d.Width, d.Access)
}

type handle struct {
	bus  volatile.Bus
	addr uintptr
	name string
}

func (h handle) Address() uintptr { return h.addr }

// RO32 is a read-only 32-bit register.
type RO32 struct{ handle }

func NewRO32(bus volatile.Bus, addr uintptr, name string) RO32 {
	return RO32{handle{bus, addr, name}}
}

func (r RO32) Load() uint32 {
	return r.bus.LoadUint32(r.addr)
}

func (r RO32) Info() Desc {
	return Desc{r.name, r.addr, 32, ReadOnly}
}

// Set32 is a 32-bit register where writing 1 to a bit sets the underlying
// state and writing 0 has no effect. Reads return the state.
type Set32 struct{ handle }

func NewSet32(bus volatile.Bus, addr uintptr, name string) Set32 {
	return Set32{handle{bus, addr, name}}
}

func (r Set32) Load() uint32 {
	return r.bus.LoadUint32(r.addr)
}

// Set stores mask in a single write. The register is never read first.
func (r Set32) Set(mask uint32) {
	r.bus.StoreUint32(r.addr, mask)
}

func (r Set32) Info() Desc {
	return Desc{r.name, r.addr, 32, WriteOneToSet}
}

// Clear32 is a 32-bit register where writing 1 to a bit clears the
// underlying state and writing 0 has no effect. Reads return the state.
type Clear32 struct{ handle }

func NewClear32(bus volatile.Bus, addr uintptr, name string) Clear32 {
	return Clear32{handle{bus, addr, name}}
}

func (r Clear32) Load() uint32 {
	return r.bus.LoadUint32(r.addr)
}

// Clear stores mask in a single write. The register is never read first.
func (r Clear32) Clear(mask uint32) {
	r.bus.StoreUint32(r.addr, mask)
}

func (r Clear32) Info() Desc {
	return Desc{r.name, r.addr, 32, WriteOneToClear}
}

// RW32 is a plain read-write 32-bit register.
type RW32 struct{ handle }

func NewRW32(bus volatile.Bus, addr uintptr, name string) RW32 {
	return RW32{handle{bus, addr, name}}
}

func (r RW32) Load() uint32 {
	return r.bus.LoadUint32(r.addr)
}

func (r RW32) Store(value uint32) {
	r.bus.StoreUint32(r.addr, value)
}

func (r RW32) Info() Desc {
	return Desc{r.name, r.addr, 32, ReadWrite}
}

// RW8 is a plain read-write byte register.
type RW8 struct{ handle }

func NewRW8(bus volatile.Bus, addr uintptr, name string) RW8 {
	return RW8{handle{bus, addr, name}}
}

func (r RW8) Load() uint8 {
	return r.bus.LoadUint8(r.addr)
}

func (r RW8) Store(value uint8) {
	r.bus.StoreUint8(r.addr, value)
}

func (r RW8) Info() Desc {
	return Desc{r.name, r.addr, 8, ReadWrite}
}
