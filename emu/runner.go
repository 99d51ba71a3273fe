package emu

import (
	"cmp"
	"fmt"
	"slices"

	"quadpwm/emu/log"
	"quadpwm/hw/pwm"
)

// Runner drives the core cycle by cycle and forwards every output sample to
// an optional trace writer. It also implements log.LogContext so that log
// entries emitted from inside a step carry the current cycle number.
type Runner struct {
	Core *pwm.Core

	trace  *TraceWriter
	cycle  uint64
	inputs pwm.Inputs
}

func NewRunner(core *pwm.Core, trace *TraceWriter) *Runner {
	return &Runner{
		Core:   core,
		trace:  trace,
		inputs: pwm.Inputs{Enable: true},
	}
}

func (r *Runner) AddLogContext(e *log.EntryZ) {
	e.Uint64("cycle", r.cycle)
}

// Cycle returns the number of cycles driven so far.
func (r *Runner) Cycle() uint64 {
	return r.cycle
}

// SetPrescaler selects the division ratio applied from the next cycle on.
func (r *Runner) SetPrescaler(sel uint8) {
	r.inputs.PrescalerSelect = sel
}

// Run drives n cycles with the currently applied inputs.
func (r *Runner) Run(n uint64) error {
	for range n {
		out, err := r.Core.Step(r.inputs)
		if err != nil {
			return fmt.Errorf("cycle %d: %w", r.cycle, err)
		}
		r.cycle++
		if r.trace != nil {
			if err := r.trace.Sample(r.cycle, out); err != nil {
				return fmt.Errorf("cycle %d: trace: %w", r.cycle, err)
			}
		}
	}
	return nil
}

// Program pulses load_enable for exactly one cycle to write a duty
// register, then returns the strobe low.
func (r *Runner) Program(ch pwm.Channel, duty uint8) error {
	in := r.inputs
	in.ChannelSelect = uint8(ch)
	in.LoadEnable = true
	in.DutyValue = duty

	out, err := r.Core.Step(in)
	if err != nil {
		return fmt.Errorf("cycle %d: %w", r.cycle, err)
	}
	r.cycle++
	if r.trace != nil {
		if err := r.trace.Sample(r.cycle, out); err != nil {
			return fmt.Errorf("cycle %d: trace: %w", r.cycle, err)
		}
	}

	log.ModEmu.InfoZ("programmed channel").
		Stringer("channel", ch).
		Uint8("duty", duty).
		End()
	return nil
}

// RunScript drives n cycles, programming duty registers at the cycles the
// script names. Events are applied in cycle order; an event cycle beyond n
// is never reached.
func (r *Runner) RunScript(events []ScriptEvent, n uint64) error {
	events = slices.Clone(events)
	slices.SortStableFunc(events, func(a, b ScriptEvent) int {
		return cmp.Compare(a.Cycle, b.Cycle)
	})

	end := r.cycle + n
	for _, ev := range events {
		if ev.Cycle > end {
			break
		}
		if ev.Cycle > r.cycle {
			if err := r.Run(ev.Cycle - r.cycle); err != nil {
				return err
			}
		}
		if err := r.Program(pwm.Channel(ev.Channel), ev.Duty); err != nil {
			return err
		}
	}
	if end > r.cycle {
		return r.Run(end - r.cycle)
	}
	return nil
}
