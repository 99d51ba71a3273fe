package pwm

import "quadpwm/hw/hwio"

// compareAll recomputes the four output bits from one shared counter value.
// Channel i is high while counter < duty[i]: over a full 256-tick period
// that is exactly duty[i] ticks high, one contiguous high block followed by
// one contiguous low block (duty=0 always low, duty=255 high 255/256).
func compareAll(counter uint8, bank *dutyBank) uint8 {
	var bits uint8
	for i := range NumChannels {
		if counter < bank.get(Channel(i)) {
			hwio.SetBit8(&bits, uint(i))
		}
	}
	return bits
}
