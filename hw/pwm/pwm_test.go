package pwm

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"quadpwm/hw/snapshot"
)

func TestResetState(t *testing.T) {
	c := New()

	// scramble everything first
	for ch := range Channel(NumChannels) {
		program(t, c, ch, uint8(10*ch))
	}
	run(t, c, 100, 0)

	out := c.Reset()

	if got := c.Counter(); got != 0 {
		t.Errorf("counter = %d, want 0", got)
	}
	for ch := range Channel(NumChannels) {
		wantDuty(t, c, ch, ResetDuty)
	}
	want := Outputs{DutyReadback: ResetDuty}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("reset outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestResetHeld(t *testing.T) {
	c := New()
	program(t, c, Channel3, 200)

	// reset forces initial values on every cycle it is held, whatever the
	// other inputs do.
	for i := range 5 {
		out := step(t, c, Inputs{
			Reset:         true,
			Enable:        true,
			LoadEnable:    true,
			ChannelSelect: 3,
			DutyValue:     200,
		})
		if out.PWM != 0 || out.CounterMSB || out.Tick || out.AnyActive {
			t.Fatalf("cycle %d: outputs not suppressed during reset: %+v", i, out)
		}
		if out.DutyReadback != ResetDuty {
			t.Fatalf("cycle %d: readback = %d, want %d", i, out.DutyReadback, ResetDuty)
		}
		if !out.LoadEcho {
			t.Fatalf("cycle %d: load echo lost during reset", i)
		}
	}
	wantDuty(t, c, Channel3, ResetDuty)
}

func TestWriteReadback(t *testing.T) {
	c := New()

	for _, tt := range []struct {
		ch   Channel
		duty uint8
	}{
		{Channel0, 64},
		{Channel1, 128},
		{Channel2, 192},
		{Channel3, 255},
	} {
		program(t, c, tt.ch, tt.duty)

		out := step(t, c, Inputs{ChannelSelect: uint8(tt.ch)})
		if out.DutyReadback != tt.duty {
			t.Errorf("readback[%v] = %d, want %d", tt.ch, out.DutyReadback, tt.duty)
		}
	}
}

func TestReadbackTracksSelection(t *testing.T) {
	c := New()
	program(t, c, Channel1, 7)

	// readback follows channel_select immediately, no load involved.
	if out := step(t, c, Inputs{ChannelSelect: 1}); out.DutyReadback != 7 {
		t.Errorf("readback = %d, want 7", out.DutyReadback)
	}
	if out := step(t, c, Inputs{ChannelSelect: 0}); out.DutyReadback != ResetDuty {
		t.Errorf("readback = %d, want %d", out.DutyReadback, ResetDuty)
	}
}

func TestReadbackSameCycleAsWrite(t *testing.T) {
	// the readback is combinational on the bank: a write is visible in the
	// very cycle it lands, one cycle before the PWM lanes see it.
	c := New()

	out := program(t, c, Channel2, 42)
	if out.DutyReadback != 42 {
		t.Errorf("readback = %d, want 42", out.DutyReadback)
	}
}

func TestChannelIndependence(t *testing.T) {
	c := New()

	duties := [NumChannels]uint8{11, 22, 33, 44}
	for ch, d := range duties {
		program(t, c, Channel(ch), d)
	}

	// rewrite one channel with an extreme value: the others must be
	// bit-for-bit unchanged.
	for ch := range Channel(NumChannels) {
		program(t, c, ch, 0xFF)
		for other := range Channel(NumChannels) {
			if other == ch {
				continue
			}
			wantDuty(t, c, other, duties[other])
		}
		program(t, c, ch, duties[ch])
	}
}

func TestLevelSensitiveLoad(t *testing.T) {
	c := New()

	// load_enable held for 3 cycles with a changing duty_value: the
	// register is rewritten on every cycle and ends up with the last value.
	for _, duty := range []uint8{10, 20, 30} {
		step(t, c, Inputs{
			ChannelSelect: 1,
			LoadEnable:    true,
			DutyValue:     duty,
		})
	}
	wantDuty(t, c, Channel1, 30)
}

// Scenario: divisor 1, duty[0]=64. Starting from counter=0, channel 0 is
// high for exactly 64 contiguous cycles out of 256, offset by one cycle
// because the comparison is registered.
func TestDutyCycleAccuracy(t *testing.T) {
	c := New()
	program(t, c, Channel0, 64)

	outs := run(t, c, 256, 0)

	high := 0
	for _, out := range outs {
		if out.PWM&1 != 0 {
			high++
		}
	}
	if high != 64 {
		t.Errorf("high for %d cycles, want 64", high)
	}

	// one contiguous high block at the start of the period
	for i, out := range outs {
		want := i < 64
		if got := out.PWM&1 != 0; got != want {
			t.Fatalf("cycle %d: channel 0 = %t, want %t", i, got, want)
		}
	}
}

func TestOneCycleComparatorDelay(t *testing.T) {
	c := New()
	run(t, c, 1, 0) // counter: 0 -> 1, output high (0 < 128)

	// write duty=0: this cycle still compares against the old value,
	// the next one sees the new one.
	out := step(t, c, Inputs{Enable: true, LoadEnable: true, DutyValue: 0})
	if out.PWM&1 == 0 {
		t.Error("write visible in the same cycle, want one cycle delay")
	}
	out = step(t, c, Inputs{Enable: true})
	if out.PWM&1 != 0 {
		t.Error("channel 0 still high one cycle after duty=0 landed")
	}
}

// Scenario: duty[2]=192 written with a one-cycle pulse; readback returns 192
// and any_active mirrors counter<192 (channel 2 holds the largest duty).
func TestProgramChannel2(t *testing.T) {
	c := New()

	program(t, c, Channel2, 192)

	out := step(t, c, Inputs{ChannelSelect: 2})
	if out.DutyReadback != 192 {
		t.Fatalf("readback = %d, want 192", out.DutyReadback)
	}

	c2 := New()
	program(t, c2, Channel2, 192)
	for i := range 256 {
		pre := c2.Counter()
		out := step(t, c2, Inputs{Enable: true, ChannelSelect: 2})
		if want := pre < 192; out.AnyActive != want {
			t.Fatalf("cycle %d (counter %d): any_active = %t, want %t",
				i, pre, out.AnyActive, want)
		}
	}
}

func TestCounterMSB(t *testing.T) {
	c := New()

	outs := run(t, c, 256, 0)
	for i, out := range outs {
		// msb reflects the post-step counter value
		want := uint8(i+1) >= 128
		if out.CounterMSB != want {
			t.Fatalf("cycle %d: counter_msb = %t, want %t", i, out.CounterMSB, want)
		}
	}
}

func TestLoadEcho(t *testing.T) {
	c := New()

	if out := step(t, c, Inputs{LoadEnable: true}); !out.LoadEcho {
		t.Error("load echo low while load_enable sampled high")
	}
	if out := step(t, c, Inputs{}); out.LoadEcho {
		t.Error("load echo high while load_enable sampled low")
	}
}

func TestOutOfRangeRejected(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
	}{
		{"channel_select", Inputs{ChannelSelect: 4, LoadEnable: true, DutyValue: 1}},
		{"prescaler_select", Inputs{Enable: true, PrescalerSelect: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			run(t, c, 10, 0)

			var before snapshot.Core
			c.SaveState(&before)

			out, err := c.Step(tt.in)
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("err = %v, want ErrOutOfRange", err)
			}
			if out != (Outputs{}) {
				t.Errorf("rejected step produced outputs: %+v", out)
			}

			var after snapshot.Core
			c.SaveState(&after)
			if diff := cmp.Diff(before, after); diff != "" {
				t.Errorf("state changed by rejected step (-before +after):\n%s", diff)
			}
		})
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	a := New()
	program(t, a, Channel1, 99)
	program(t, a, Channel3, 3)
	run(t, a, 137, 2)

	var state snapshot.Core
	a.SaveState(&state)

	b := New()
	b.SetState(&state)

	// both cores must produce identical outputs from here on
	for i := range 300 {
		in := Inputs{Enable: true, PrescalerSelect: 2, ChannelSelect: uint8(i) % 4}
		oa, erra := a.Step(in)
		ob, errb := b.Step(in)
		if erra != nil || errb != nil {
			t.Fatalf("step error: %v %v", erra, errb)
		}
		if oa != ob {
			t.Fatalf("cycle %d: outputs diverge:\n%+v\n%+v", i, oa, ob)
		}
	}
}
