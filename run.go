package main

import (
	"fmt"
	"strconv"
	"strings"

	"quadpwm/emu"
	"quadpwm/emu/log"
	"quadpwm/hw/pwm"
	"quadpwm/hw/snapshot"
)

func runSim(cli CLI) {
	cfg := emu.LoadConfigOrDefault()
	duties := cfg.Channels.Duty
	checkf(applyDutyFlags(cli.Run.Duty, &duties), "invalid duty flag")

	presel := cfg.Prescaler
	if cli.Run.Prescaler != nil {
		presel = *cli.Run.Prescaler
	}

	var trace *emu.TraceWriter
	if cli.Run.Trace != nil {
		defer cli.Run.Trace.Close()
		trace = emu.NewTraceWriter(cli.Run.Trace, cli.Run.Stride)
	}

	r := emu.NewRunner(pwm.New(), trace)
	log.AddContext(r)
	defer log.RemoveContext(r)

	r.SetPrescaler(presel)
	for ch, duty := range duties {
		if duty != pwm.ResetDuty {
			checkf(r.Program(pwm.Channel(ch), duty), "failed to program channel %d", ch)
		}
	}

	checkf(r.RunScript(cfg.Script, cli.Run.Cycles), "simulation failed")
}

func renderWave(cli CLI) {
	cfg := emu.LoadConfigOrDefault()
	duties := cfg.Channels.Duty
	checkf(applyDutyFlags(cli.Wave.Duty, &duties), "invalid duty flag")

	presel := cfg.Prescaler
	if cli.Wave.Prescaler != nil {
		presel = *cli.Wave.Prescaler
	}
	samplerate := cfg.Wave.SampleRate
	if cli.Wave.SampleRate > 0 {
		samplerate = cli.Wave.SampleRate
	}

	var chans []pwm.Channel
	for _, ch := range cli.Wave.Channels {
		if ch >= pwm.NumChannels {
			fatalf("invalid channel %d", ch)
		}
		chans = append(chans, pwm.Channel(ch))
	}

	state := snapshot.Core{Duty: duties}
	wr := emu.WaveRenderer{
		ClockRate:  cfg.Wave.ClockRate,
		SampleRate: samplerate,
		Prescaler:  presel,
		Seconds:    cli.Wave.Seconds,
	}
	checkf(wr.RenderChannels(&state, chans, cli.Wave.Out), "failed to render")
}

// applyDutyFlags overlays CH=VAL pairs onto the configured duty values.
func applyDutyFlags(flags []string, duties *[pwm.NumChannels]uint8) error {
	for _, s := range flags {
		chs, vals, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("%q: want CH=VAL", s)
		}
		ch, err := strconv.ParseUint(chs, 10, 8)
		if err != nil || ch >= pwm.NumChannels {
			return fmt.Errorf("%q: invalid channel", s)
		}
		val, err := strconv.ParseUint(vals, 10, 8)
		if err != nil {
			return fmt.Errorf("%q: invalid duty value", s)
		}
		duties[ch] = uint8(val)
	}
	return nil
}
