package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"quadpwm/emu/log"
)

type mode byte

const (
	runMode     mode = iota // Run a simulation
	waveMode                // Render channels to WAV
	versionMode             // Show version
)

type (
	CLI struct {
		Run     Run     `cmd:"" help:"Run a PWM simulation." default:"true"`
		Wave    Wave    `cmd:"" help:"Render PWM channels to WAV files."`
		Version Version `cmd:"" help:"Show quadpwm version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		Cycles    uint64   `name:"cycles" help:"Number of clock cycles to run." default:"1024"`
		Prescaler *uint8   `name:"prescaler" help:"Clock division select, 0-7 (divide by 2^n)."`
		Duty      []string `name:"duty" help:"${duty_help}" placeholder:"CH=VAL"`
		Trace     *outfile `name:"trace" help:"Write cycle trace." placeholder:"FILE|stdout|stderr"`
		Stride    int      `name:"stride" help:"Trace every Nth cycle." default:"1"`
	}

	Wave struct {
		Channels   []uint8  `name:"channels" help:"Channels to render." default:"0,1,2,3"`
		Seconds    float64  `name:"seconds" help:"Length of rendered audio." default:"1"`
		Out        string   `name:"out" help:"Output directory." default:"." type:"existingdir"`
		Prescaler  *uint8   `name:"prescaler" help:"Clock division select, 0-7 (divide by 2^n)."`
		Duty       []string `name:"duty" help:"${duty_help}" placeholder:"CH=VAL"`
		SampleRate int      `name:"samplerate" help:"Output sample rate." default:"0"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"duty_help": "Program a channel duty register (repeatable).",
	"log_help":  "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("quadpwm"),
		kong.Description("Four-channel PWM generator simulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "wave":
		cfg.mode = waveMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
