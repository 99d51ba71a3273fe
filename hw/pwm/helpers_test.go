package pwm

import (
	"testing"
)

func step(t *testing.T, c *Core, in Inputs) Outputs {
	t.Helper()

	out, err := c.Step(in)
	if err != nil {
		t.Fatalf("Step(%+v): %v", in, err)
	}
	return out
}

// program pulses load_enable for exactly one cycle with the counters frozen,
// so the master counter is left where it was.
func program(t *testing.T, c *Core, ch Channel, duty uint8) Outputs {
	t.Helper()

	return step(t, c, Inputs{
		ChannelSelect: uint8(ch),
		LoadEnable:    true,
		DutyValue:     duty,
	})
}

// run drives n enabled cycles with the given prescaler select and returns
// the collected outputs.
func run(t *testing.T, c *Core, n int, presel uint8) []Outputs {
	t.Helper()

	outs := make([]Outputs, n)
	for i := range outs {
		outs[i] = step(t, c, Inputs{Enable: true, PrescalerSelect: presel})
	}
	return outs
}

func wantDuty(t *testing.T, c *Core, ch Channel, want uint8) {
	t.Helper()

	if got := c.Duty(ch); got != want {
		t.Errorf("duty[%v] = %d, want %d", ch, got, want)
	}
}
