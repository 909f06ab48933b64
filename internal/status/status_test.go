package status

import "testing"

func TestMachine_MountWithSourceStartsUploading(t *testing.T) {
	m := NewMachine(true)
	if m.Current() != Uploading {
		t.Fatalf("expected uploading, got %s", m.Current())
	}
	if !m.Fire(Ready) {
		t.Fatalf("expected ready transition to be valid")
	}
	if m.Current() != Filled {
		t.Fatalf("expected filled, got %s", m.Current())
	}
	if !m.Fire(Clear) || m.Current() != Empty {
		t.Fatalf("expected clear to return to empty, got %s", m.Current())
	}
}

func TestMachine_MountWithoutSourceIsEmpty(t *testing.T) {
	m := NewMachine(false)
	if !m.Is(Empty) {
		t.Fatalf("expected empty, got %s", m.Current())
	}
}

func TestMachine_InvalidTransitionsAreNoops(t *testing.T) {
	cases := []struct {
		from Status
		ev   Event
	}{
		{Empty, Ready},
		{Empty, Clear},
		{Empty, Fail},
		{Uploading, Begin},
		{Filled, Ready},
	}
	for _, c := range cases {
		m := &Machine{current: c.from}
		if m.Fire(c.ev) {
			t.Fatalf("%s on %s: expected no-op", c.ev, c.from)
		}
		if m.Current() != c.from {
			t.Fatalf("%s on %s: status changed to %s", c.ev, c.from, m.Current())
		}
	}
}

func TestMachine_FlagsExactlyOne(t *testing.T) {
	m := NewMachine(false)
	for _, ev := range []Event{Begin, Ready, Begin, Fail, Begin, Clear} {
		m.Fire(ev)
		n := 0
		for _, on := range m.Flags() {
			if on {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("after %s expected exactly one flag, got %d", ev, n)
		}
	}
}
