package pwm

// Channel identifies one of the four PWM output lanes.
type Channel uint8

//go:generate go tool stringer -type=Channel

const (
	Channel0 Channel = iota
	Channel1
	Channel2
	Channel3
)

// NumChannels is fixed by the 2-bit channel selector.
const NumChannels = 4

// ResetDuty is the duty register value after reset (50%).
const ResetDuty = 128
