package pwm

// status derives the auxiliary outputs. It is purely combinational: counter
// msb and duty readback reflect the state as updated by this step, while the
// PWM bits passed in are the registered (one cycle delayed) comparison.
func (c *Core) status(in Inputs, tick bool, pwmBits uint8) Outputs {
	return Outputs{
		PWM:          pwmBits,
		CounterMSB:   c.counter.msb(),
		Tick:         tick,
		LoadEcho:     in.LoadEnable,
		AnyActive:    pwmBits != 0,
		DutyReadback: c.bank.get(Channel(in.ChannelSelect)),
	}
}
