package hw

import "testing"

func TestControllerShiftsOutButtonsInOrder(t *testing.T) {
	c := &Controller{Buttons: Buttons{A: true, Start: true}}
	c.Write(1) // strobe high, latches
	c.Write(0) // strobe low, holds snapshot

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 0} // A, B, Select, Start, Up, Down, Left, Right
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Fatalf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestControllerReloadsWhileStrobeHigh(t *testing.T) {
	c := &Controller{}
	c.Write(1)
	if c.Read() != 0 {
		t.Fatal("no buttons pressed, expected 0")
	}
	c.Buttons.A = true
	if c.Read() != 1 {
		t.Fatal("strobe high should keep reloading from live button state")
	}
}
