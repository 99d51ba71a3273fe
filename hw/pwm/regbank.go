package pwm

import (
	"quadpwm/emu/log"
	"quadpwm/hw/hwio"
)

// dutyBank holds the four per-channel duty registers. A write lands on
// exactly one register per cycle; the other three are left bit-for-bit
// untouched.
type dutyBank struct {
	regs [NumChannels]hwio.Reg8
}

var dutyRegNames = [NumChannels]string{"DUTY0", "DUTY1", "DUTY2", "DUTY3"}

func (b *dutyBank) init() {
	for i := range b.regs {
		ch := Channel(i)
		b.regs[i] = hwio.Reg8{
			Name:  dutyRegNames[i],
			Value: ResetDuty,
			WriteCb: func(old, val uint8) {
				log.ModPWM.InfoZ("write duty").
					Stringer("channel", ch).
					Uint8("old", old).
					Uint8("val", val).
					End()
			},
		}
	}
}

func (b *dutyBank) reset() {
	for i := range b.regs {
		b.regs[i].Value = ResetDuty
	}
}

// set loads value into the addressed channel register.
func (b *dutyBank) set(ch Channel, value uint8) {
	b.regs[ch].Write8(value)
}

// get reads the addressed channel register. Reads are never gated.
func (b *dutyBank) get(ch Channel) uint8 {
	return b.regs[ch].Peek8()
}
