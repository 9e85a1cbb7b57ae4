package cpu

import "testing"

// flatBus is a 64KiB flat RAM bus, enough to exercise the CPU core in
// isolation without a real cartridge/PPU/APU behind it.
type flatBus struct {
	mem [0x10000]uint8
}

func (b *flatBus) Read8(addr uint16) uint8       { return b.mem[addr] }
func (b *flatBus) Write8(addr uint16, val uint8) { b.mem[addr] = val }

func newTestCPU(prg ...uint8) (*CPU, *flatBus) {
	bus := &flatBus{}
	copy(bus.mem[0x8000:], prg)
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x80
	c := New()
	c.Bus = bus
	c.Reset()
	return c, bus
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, _ := newTestCPU(0xA9, 0x00, 0xA9, 0x80, 0xA9, 0x2A)

	c.Step()
	if c.A != 0 || !c.P.has(flagZ) || c.P.has(flagN) {
		t.Fatalf("A=%02X P=%08b, want A=00 Z=1 N=0", c.A, c.P)
	}

	c.Step()
	if c.A != 0x80 || c.P.has(flagZ) || !c.P.has(flagN) {
		t.Fatalf("A=%02X P=%08b, want A=80 Z=0 N=1", c.A, c.P)
	}

	c.Step()
	if c.A != 0x2A || c.P.has(flagZ) || c.P.has(flagN) {
		t.Fatalf("A=%02X P=%08b, want A=2A Z=0 N=0", c.A, c.P)
	}
}

func TestSTAZeroPage(t *testing.T) {
	c, bus := newTestCPU(0xA9, 0x42, 0x85, 0x10)
	c.Step()
	c.Step()
	if got := bus.mem[0x10]; got != 0x42 {
		t.Fatalf("mem[0x10] = %02X, want 42", got)
	}
}

func TestADCCarryAndOverflow(t *testing.T) {
	// 0x50 + 0x50 overflows into negative with V set, C clear.
	c, _ := newTestCPU(0xA9, 0x50, 0x69, 0x50)
	c.Step()
	c.Step()
	if c.A != 0xA0 {
		t.Fatalf("A = %02X, want A0", c.A)
	}
	if c.P.has(flagC) {
		t.Error("C should be clear")
	}
	if !c.P.has(flagV) {
		t.Error("V should be set")
	}
	if !c.P.has(flagN) {
		t.Error("N should be set")
	}
}

func TestBranchCycleAccounting(t *testing.T) {
	// BNE not taken: 2 cycles. BNE taken, same page: 3. BNE taken across a
	// page boundary: 4 (spec.md §4.1 Cycle accounting).
	c, bus := newTestCPU(0xD0, 0x00) // BNE +0, Z set so branch not taken
	c.P.set(flagZ, true)
	cycles := c.Step()
	if cycles != 2 {
		t.Fatalf("not-taken BNE cost %d cycles, want 2", cycles)
	}

	c, bus = newTestCPU(0xD0, 0x02) // BNE +2, Z clear: taken, same page
	c.P.set(flagZ, false)
	cycles = c.Step()
	if cycles != 3 {
		t.Fatalf("same-page taken BNE cost %d cycles, want 3", cycles)
	}

	// Place the branch at the end of a page so the target crosses into the
	// next page.
	bus = &flatBus{}
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0xFD, 0x80
	bus.mem[0x80FD] = 0xD0
	bus.mem[0x80FE] = 0x7F // target = 0x80FF + 0x7F = 0x817E, crosses page
	c = New()
	c.Bus = bus
	c.Reset()
	c.P.set(flagZ, false)
	cycles = c.Step()
	if cycles != 4 {
		t.Fatalf("page-crossing taken BNE cost %d cycles, want 4", cycles)
	}
}

func TestStackPushPull(t *testing.T) {
	c, _ := newTestCPU(0xA9, 0x7E, 0x48, 0xA9, 0x00, 0x68)
	c.Step() // LDA #$7E
	sp := c.SP
	c.Step() // PHA
	if c.SP != sp-1 {
		t.Fatalf("SP = %02X, want %02X", c.SP, sp-1)
	}
	c.Step() // LDA #$00
	c.Step() // PLA
	if c.A != 0x7E {
		t.Fatalf("A = %02X, want 7E", c.A)
	}
	if c.SP != sp {
		t.Fatalf("SP = %02X, want %02X", c.SP, sp)
	}
}

func TestJSRRTS(t *testing.T) {
	c, _ := newTestCPU(
		0x20, 0x05, 0x80, // JSR $8005
		0x00,       // BRK (never reached directly)
		0xEA,       // NOP (padding so $8005 lands cleanly)
		0xA9, 0x11, // $8005: LDA #$11
		0x60, // RTS
	)
	c.Step() // JSR
	if c.PC != 0x8005 {
		t.Fatalf("PC = %04X, want 8005", c.PC)
	}
	c.Step() // LDA #$11
	if c.A != 0x11 {
		t.Fatalf("A = %02X, want 11", c.A)
	}
	c.Step() // RTS
	if c.PC != 0x8003 {
		t.Fatalf("PC = %04X, want 8003 (return address)", c.PC)
	}
}

func TestUnofficialLAX(t *testing.T) {
	c, bus := newTestCPU(0xA7, 0x10) // LAX $10
	bus.mem[0x10] = 0x55
	c.Step()
	if c.A != 0x55 || c.X != 0x55 {
		t.Fatalf("A=%02X X=%02X, want both 55", c.A, c.X)
	}
}

func TestUnofficialSAX(t *testing.T) {
	c, bus := newTestCPU(0xA9, 0xF0, 0xA2, 0x0F, 0x87, 0x20) // LDA #F0; LDX #0F; SAX $20
	c.Step()
	c.Step()
	c.Step()
	if got := bus.mem[0x20]; got != 0x00 {
		t.Fatalf("mem[0x20] = %02X, want 00 (F0 & 0F)", got)
	}
}

func TestUnofficialDCP(t *testing.T) {
	// DCP decrements memory then compares with A, setting C/Z/N as CMP would.
	c, bus := newTestCPU(0xA9, 0x10, 0xC7, 0x30) // LDA #$10; DCP $30
	bus.mem[0x30] = 0x11
	c.Step()
	c.Step()
	if got := bus.mem[0x30]; got != 0x10 {
		t.Fatalf("mem[0x30] = %02X, want 10", got)
	}
	if !c.P.has(flagZ) {
		t.Error("Z should be set: A == decremented memory")
	}
	if !c.P.has(flagC) {
		t.Error("C should be set: A >= decremented memory")
	}
}

func TestNMIServicing(t *testing.T) {
	c, bus := newTestCPU(0xEA) // NOP
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0x90

	c.SetNMILine(false)
	c.SetNMILine(true) // rising edge latches the NMI

	cycles := c.Step()
	if cycles != 7 {
		t.Fatalf("NMI serviced in %d cycles, want 7", cycles)
	}
	if c.PC != 0x9000 {
		t.Fatalf("PC = %04X, want 9000 (NMI vector)", c.PC)
	}
	if !c.P.has(flagI) {
		t.Error("I should be set after servicing an interrupt")
	}
}

func TestStallConsumesCyclesWithoutExecuting(t *testing.T) {
	c, _ := newTestCPU(0xA9, 0x42)
	c.Stall(513)
	cycles := c.Step()
	if cycles != 513 {
		t.Fatalf("stalled step reported %d cycles, want 513", cycles)
	}
	if c.A != 0 {
		t.Error("stall must not execute an instruction")
	}
}
