package emu

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arl/blip"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"golang.org/x/sync/errgroup"

	"quadpwm/emu/log"
	"quadpwm/hw/pwm"
	"quadpwm/hw/snapshot"
)

// amplitude of a high PWM lane in the rendered stream.
const waveAmp = 12000

// samples generated per blip time frame.
const waveChunk = 1024

// WaveRenderer turns PWM lane bitstreams into band-limited 16-bit mono
// audio, one WAV file per channel. Each channel renders on its own copy of
// the core, so channels can be rendered concurrently.
type WaveRenderer struct {
	ClockRate  int // core clock, in Hz
	SampleRate int
	Prescaler  uint8
	Seconds    float64
}

// RenderChannels renders each requested channel to dir/pwmN.wav, starting
// every render from the same core state.
func (wr *WaveRenderer) RenderChannels(state *snapshot.Core, chans []pwm.Channel, dir string) error {
	var g errgroup.Group
	for _, ch := range chans {
		path := filepath.Join(dir, fmt.Sprintf("pwm%d.wav", ch))
		g.Go(func() error {
			return wr.renderChannel(state, ch, path)
		})
	}
	return g.Wait()
}

func (wr *WaveRenderer) renderChannel(state *snapshot.Core, ch pwm.Channel, path string) error {
	core := pwm.New()
	if state != nil {
		core.SetState(state)
	}

	samples, err := wr.renderSamples(core, ch)
	if err != nil {
		return err
	}

	log.ModWave.InfoZ("rendered channel").
		Stringer("channel", ch).
		Int("samples", len(samples)).
		String("path", path).
		End()

	return writeWav(path, samples, wr.SampleRate)
}

// renderSamples steps the core and feeds lane transitions to a blip buffer,
// which resamples the clock-rate bitstream down to the audio rate.
func (wr *WaveRenderer) renderSamples(core *pwm.Core, ch pwm.Channel) ([]int16, error) {
	buf := blip.NewBuffer(waveChunk)
	buf.SetRates(float64(wr.ClockRate), float64(wr.SampleRate))

	nsamples := int(wr.Seconds * float64(wr.SampleRate))
	samples := make([]int16, 0, nsamples)
	tmp := make([]int16, waveChunk)

	in := pwm.Inputs{Enable: true, PrescalerSelect: wr.Prescaler}
	var last int16

	for len(samples) < nsamples {
		clocks := buf.ClocksNeeded(len(tmp))
		for t := range clocks {
			out, err := core.Step(in)
			if err != nil {
				return nil, err
			}
			var level int16
			if out.PWM&(1<<ch) != 0 {
				level = waveAmp
			}
			if level != last {
				buf.AddDelta(uint64(t), int32(level-last))
				last = level
			}
		}
		buf.EndFrame(clocks)

		n := buf.ReadSamples(tmp, len(tmp), blip.Mono)
		samples = append(samples, tmp[:n]...)
	}
	return samples[:nsamples], nil
}

func writeWav(path string, samples []int16, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	ibuf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(ibuf); err != nil {
		return err
	}
	return enc.Close()
}
