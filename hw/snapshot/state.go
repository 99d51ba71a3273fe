// Package snapshot holds plain-data captures of the whole core state, used
// for save/restore and by the simulation harness.
package snapshot

type Core struct {
	PrescalerCounter uint8
	Counter          uint8
	Duty             [4]uint8
	PWM              uint8
}
