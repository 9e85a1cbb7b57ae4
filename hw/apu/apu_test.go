package apu

import "testing"

func TestLengthCounterDecrementsOnHalfFrameSteps(t *testing.T) {
	a := New(44100)
	a.WriteRegister(0x4015, 0x01) // enable pulse 1
	a.WriteRegister(0x4000, 0x00) // halt clear
	a.WriteRegister(0x4003, 0x08) // load length index 1 -> 254

	if a.Pulse1.length.value != 254 {
		t.Fatalf("length = %d, want 254", a.Pulse1.length.value)
	}

	a.Tick(step2) // first half-frame clock at 7457
	if a.Pulse1.length.value != 253 {
		t.Fatalf("length after step2 = %d, want 253", a.Pulse1.length.value)
	}
}

func TestFrameIRQRaisedOnStep4InFourStepMode(t *testing.T) {
	a := New(44100)
	a.WriteRegister(0x4017, 0x00) // 4-step mode, IRQ enabled

	a.Tick(step4)
	if !a.IRQPending() {
		t.Fatal("frame IRQ should be raised at step 4 in 4-step mode")
	}
}

func TestFiveStepModeNeverRaisesIRQ(t *testing.T) {
	a := New(44100)
	a.WriteRegister(0x4017, 0x80) // 5-step mode

	a.Tick(step5 + 10)
	if a.IRQPending() {
		t.Fatal("5-step mode must never raise the frame IRQ")
	}
}

func TestStatusReadClearsIRQFlag(t *testing.T) {
	a := New(44100)
	a.WriteRegister(0x4017, 0x00)
	a.Tick(step4)
	if !a.IRQPending() {
		t.Fatal("expected IRQ pending before status read")
	}
	status := a.ReadStatus()
	if status&0x40 == 0 {
		t.Fatal("status byte should report the frame IRQ before clearing it")
	}
	if a.IRQPending() {
		t.Fatal("reading status should clear the frame IRQ flag")
	}
}
