package emu

import (
	"io"

	"github.com/go-faster/jx"

	"quadpwm/hw/pwm"
)

// TraceWriter streams one JSON object per sampled cycle, one per line.
type TraceWriter struct {
	w      io.Writer
	e      jx.Encoder
	stride uint64
}

// NewTraceWriter samples every stride-th cycle (stride < 1 means every
// cycle).
func NewTraceWriter(w io.Writer, stride int) *TraceWriter {
	if stride < 1 {
		stride = 1
	}
	return &TraceWriter{w: w, stride: uint64(stride)}
}

func (tw *TraceWriter) Sample(cycle uint64, out pwm.Outputs) error {
	if (cycle-1)%tw.stride != 0 {
		return nil
	}

	e := &tw.e
	e.Reset()
	e.ObjStart()
	e.FieldStart("cycle")
	e.UInt64(cycle)
	e.FieldStart("pwm")
	e.UInt8(out.PWM)
	e.FieldStart("counter_msb")
	e.Bool(out.CounterMSB)
	e.FieldStart("tick")
	e.Bool(out.Tick)
	e.FieldStart("any_active")
	e.Bool(out.AnyActive)
	e.FieldStart("readback")
	e.UInt8(out.DutyReadback)
	e.ObjEnd()

	if _, err := tw.w.Write(tw.e.Bytes()); err != nil {
		return err
	}
	_, err := tw.w.Write([]byte{'\n'})
	return err
}
