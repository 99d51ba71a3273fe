package pwm

// prescaler derives the tick that clocks the master counter. Its internal
// counter increments every enabled cycle, never gated by its own tick.
type prescaler struct {
	counter uint8
}

func (p *prescaler) reset() {
	p.counter = 0
}

// tick reports whether the selected division ratio produces a tick on this
// cycle. sel=0 ticks every cycle; sel=k ticks on the cycle where bit k-1 of
// the counter rises, once per 2^k cycles. All 8 encodings of sel are legal.
func (p *prescaler) tick(sel uint8) bool {
	if sel == 0 {
		return true
	}
	mask := uint8(1)<<sel - 1
	return p.counter&mask == 1<<(sel-1)
}

func (p *prescaler) advance() {
	p.counter++
}
