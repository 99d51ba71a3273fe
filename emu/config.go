package emu

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"quadpwm/emu/log"
	"quadpwm/hw/pwm"
)

type Config struct {
	Channels  ChannelsConfig `toml:"channels"`
	Prescaler uint8          `toml:"prescaler"`
	Trace     TraceConfig    `toml:"trace"`
	Wave      WaveConfig     `toml:"wave"`
	Script    []ScriptEvent  `toml:"script"`
}

type ChannelsConfig struct {
	Duty [pwm.NumChannels]uint8 `toml:"duty"`
}

type TraceConfig struct {
	Stride int `toml:"stride"` // sample every Nth cycle
}

type WaveConfig struct {
	ClockRate  int `toml:"clock_rate"` // core clock, in Hz
	SampleRate int `toml:"sample_rate"`
}

// ScriptEvent programs one duty register at a given cycle of a scripted run.
type ScriptEvent struct {
	Cycle   uint64 `toml:"cycle"`
	Channel uint8  `toml:"channel"`
	Duty    uint8  `toml:"duty"`
}

func DefaultConfig() Config {
	return Config{
		Channels: ChannelsConfig{
			Duty: [pwm.NumChannels]uint8{pwm.ResetDuty, pwm.ResetDuty, pwm.ResetDuty, pwm.ResetDuty},
		},
		Trace: TraceConfig{Stride: 1},
		Wave:  WaveConfig{ClockRate: 1_000_000, SampleRate: 44100},
	}
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("quadpwm")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the quadpwm config
// directory, or provides a default one.
func LoadConfigOrDefault() Config {
	cfg := DefaultConfig()
	_, err := toml.DecodeFile(filepath.Join(ConfigDir, cfgFilename), &cfg)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig into the quadpwm config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0644)
}
