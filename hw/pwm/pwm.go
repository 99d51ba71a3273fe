// Package pwm implements a four-channel pulse-width-modulation generator as
// a synchronous counter-comparator engine. The four output lanes share one
// 8-bit master counter clocked through a divide-by-2^n prescaler; each lane
// has its own 8-bit duty register, written one at a time through a 2-bit
// channel selector.
package pwm

import (
	"quadpwm/emu/log"
	"quadpwm/hw/snapshot"
)

// Inputs is the signal set sampled once per clock cycle.
type Inputs struct {
	Enable          bool
	Reset           bool
	ChannelSelect   uint8 // 0-3, addresses a duty register
	LoadEnable      bool  // level-sensitive write strobe
	PrescalerSelect uint8 // 0-7, divides the input clock by 2^n
	DutyValue       uint8
}

// Outputs is the signal state published at the end of a step.
type Outputs struct {
	PWM          uint8 // one bit per channel, bit 0 = channel 0
	CounterMSB   bool
	Tick         bool
	LoadEcho     bool
	AnyActive    bool
	DutyReadback uint8
}

// Core is the synchronous PWM engine. One Step call models one clock cycle.
// All next-state computation reads the state as it was when the step began;
// new values are published together when the step returns, so a same-cycle
// write can never leak into that cycle's comparison.
type Core struct {
	presc   prescaler
	counter masterCounter
	bank    dutyBank
	pwmOut  uint8
}

func New() *Core {
	c := &Core{}
	c.bank.init()
	c.reset()
	return c
}

func (c *Core) reset() {
	c.presc.reset()
	c.counter.reset()
	c.bank.reset()
	c.pwmOut = 0
}

// Reset runs one step with the reset line asserted and everything else low.
func (c *Core) Reset() Outputs {
	out, _ := c.Step(Inputs{Reset: true})
	return out
}

const (
	maxChannel   = NumChannels - 1
	maxPrescaler = 7
)

func (c *Core) validate(in Inputs) error {
	if in.ChannelSelect > maxChannel {
		return &RangeError{Field: "channel_select", Value: int(in.ChannelSelect), Max: maxChannel}
	}
	if in.PrescalerSelect > maxPrescaler {
		return &RangeError{Field: "prescaler_select", Value: int(in.PrescalerSelect), Max: maxPrescaler}
	}
	return nil
}

// Step advances the core by one clock cycle. A validation error rejects the
// whole step: state is left exactly as it was, there is no partial step.
//
// While Reset is asserted every register is forced back to its initial
// value and normal transitions are suppressed. While Enable is low the
// prescaler and master counter hold their values; duty writes are gated
// only by LoadEnable.
func (c *Core) Step(in Inputs) (Outputs, error) {
	if err := c.validate(in); err != nil {
		log.ModPWM.ErrorZ("step rejected").Error("err", err).End()
		return Outputs{}, err
	}

	if in.Reset {
		c.reset()
		return Outputs{LoadEcho: in.LoadEnable, DutyReadback: ResetDuty}, nil
	}

	// The PWM bits compare the counter and duty values registered at the
	// end of the previous cycle: a write landing this cycle is not visible
	// on the lanes before the next one.
	bits := compareAll(c.counter.value, &c.bank)

	tick := false
	if in.Enable {
		tick = c.presc.tick(in.PrescalerSelect)
		c.presc.advance()
		if tick {
			c.counter.advance()
		}
	}
	if in.LoadEnable {
		c.bank.set(Channel(in.ChannelSelect), in.DutyValue)
	}

	c.pwmOut = bits
	return c.status(in, tick, bits), nil
}

// Duty returns the current value of a channel's duty register.
func (c *Core) Duty(ch Channel) uint8 {
	return c.bank.get(ch)
}

// Counter returns the current master counter value.
func (c *Core) Counter() uint8 {
	return c.counter.value
}

func (c *Core) SaveState(state *snapshot.Core) {
	state.PrescalerCounter = c.presc.counter
	state.Counter = c.counter.value
	for i := range c.bank.regs {
		state.Duty[i] = c.bank.regs[i].Value
	}
	state.PWM = c.pwmOut
}

func (c *Core) SetState(state *snapshot.Core) {
	c.presc.counter = state.PrescalerCounter
	c.counter.value = state.Counter
	for i := range c.bank.regs {
		c.bank.regs[i].Value = state.Duty[i]
	}
	c.pwmOut = state.PWM
}
