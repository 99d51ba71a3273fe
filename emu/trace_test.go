package emu

import (
	"bytes"
	"strings"
	"testing"

	"quadpwm/hw/pwm"
)

func TestTraceWriter(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTraceWriter(&buf, 1)

	out := pwm.Outputs{
		PWM:          0b0101,
		CounterMSB:   true,
		Tick:         true,
		AnyActive:    true,
		DutyReadback: 192,
	}
	if err := tw.Sample(1, out); err != nil {
		t.Fatal(err)
	}

	want := `{"cycle":1,"pwm":5,"counter_msb":true,"tick":true,"any_active":true,"readback":192}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("trace line:\n got %s\nwant %s", got, want)
	}
}

func TestTraceWriterStride(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTraceWriter(&buf, 4)

	for cycle := uint64(1); cycle <= 16; cycle++ {
		if err := tw.Sample(cycle, pwm.Outputs{}); err != nil {
			t.Fatal(err)
		}
	}

	lines := strings.Count(buf.String(), "\n")
	if lines != 4 {
		t.Errorf("trace has %d lines, want 4", lines)
	}
}
