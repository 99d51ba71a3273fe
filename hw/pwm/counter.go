package pwm

import "quadpwm/hw/hwio"

// masterCounter is the shared 8-bit time base. All four comparators read the
// same value, which is what guarantees zero phase offset between channels.
type masterCounter struct {
	value uint8
}

func (c *masterCounter) reset() {
	c.value = 0
}

// advance moves the counter one position around the 0..255 ring.
func (c *masterCounter) advance() {
	c.value++
}

// msb toggles at half the effective PWM frequency.
func (c *masterCounter) msb() bool {
	return hwio.GetBit8(c.value, 7)
}
