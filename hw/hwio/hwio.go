// Package hwio provides the masked linear memory window (Mem) shared by the
// Bus's CPU RAM and the PPU's internal nametable VRAM, so mirroring
// (spec.md §3/§4.2) is expressed once instead of duplicated address-masking
// logic at each call site.
package hwio

// Mem is a linear memory window of a power-of-two size, optionally
// read-only, addressed modulo its length (mirroring).
type Mem struct {
	Name     string
	Data     []byte
	ReadOnly bool
}

func NewMem(name string, size int) *Mem {
	if size&(size-1) != 0 {
		panic("hwio: Mem size must be a power of two")
	}
	return &Mem{Name: name, Data: make([]byte, size)}
}

func (m *Mem) mask(addr uint16) int { return int(addr) & (len(m.Data) - 1) }

func (m *Mem) Read8(addr uint16) uint8 { return m.Data[m.mask(addr)] }

func (m *Mem) Write8(addr uint16, val uint8) {
	if m.ReadOnly {
		return
	}
	m.Data[m.mask(addr)] = val
}
