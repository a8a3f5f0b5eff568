// Command fuzz hosts the fuzz processor outside a plugin host.
//
// Usage:
//
//	fuzz process -fuzz 0.5 -gain -6 in.wav out.wav
//	fuzz process -fuzz 0 -ramp 1 in.wav out.wav    # automate fuzz over the file
//	fuzz play -fuzz 0.3 in.wav                      # keys move fuzz and gain live
//	fuzz params -load preset.state
package main

import (
	"io"
	"log"
	"os"

	"github.com/integrii/flaggy"

	"github.com/justyntemme/fuzzgo/pkg/framework/debug"
)

// AppName is the app name
const AppName = "fuzz"

// AppDesc is the app description
const AppDesc = "fuzz distortion with smoothed output gain"

var version = "unknown"

type command int

const (
	cmdNone command = iota
	cmdProcess
	cmdPlay
	cmdParams
)

func main() {
	log.SetFlags(0)

	cfg := newZeroConfig()
	cmd := doFlags(&cfg)

	chk(cfg.validate(), "invalid config")
	debug.SetLevel(cfg.level)

	if cfg.logFile != "" {
		f, err := debug.Default().OpenFile(cfg.logFile)
		chk(err, "failed to open log file")
		defer f.Close()
	}

	chk(run(cmd, &cfg, os.Stdout), "fuzz failed")
}

func run(cmd command, cfg *config, w io.Writer) error {
	switch cmd {
	case cmdProcess:
		return runProcess(cfg, w)
	case cmdPlay:
		return runPlay(cfg, w)
	case cmdParams:
		return runParams(cfg, w)
	}
	return nil
}

func doFlags(cfg *config) command {
	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.Version = version

	processCmd := flaggy.Subcommand{
		Name:        "process",
		ShortName:   "p",
		Description: "run a WAV file through the effect",
	}
	processCmd.AddPositionalValue(&cfg.input, "input", 1, true, "input WAV file")
	processCmd.AddPositionalValue(&cfg.output, "output", 2, true, "output WAV file")
	processCmd.Float64(&cfg.rampTo, "rt", "ramp", "automate fuzz to this amount by the end of the file (negative disables)")
	processCmd.Int(&cfg.rampStep, "rs", "ramp-step", "samples between automation points")
	processCmd.Bool(&cfg.verbose, "v", "verbose", "report block processing times")
	parser.AttachSubcommand(&processCmd, 1)

	playCmd := flaggy.Subcommand{
		Name:        "play",
		Description: "play a WAV file through the effect with live key control",
	}
	playCmd.AddPositionalValue(&cfg.input, "input", 1, true, "input WAV file")
	playCmd.Bool(&cfg.loop, "l", "loop", "repeat the input")
	playCmd.Bool(&cfg.verbose, "v", "verbose", "show real-time load")
	parser.AttachSubcommand(&playCmd, 1)

	paramsCmd := flaggy.Subcommand{
		Name:        "params",
		Description: "list parameters and their values",
	}
	parser.AttachSubcommand(&paramsCmd, 1)

	parser.Int(&cfg.blockSize, "b", "block", "max block size in samples")
	parser.Float64(&cfg.sampleRate, "r", "rate", "sample rate override (0 uses the file rate)")
	parser.Float64(&cfg.fuzz, "f", "fuzz", "fuzz amount [0, 1]")
	parser.Float64(&cfg.gainDB, "g", "gain", "output gain in dB [-30, 30]")
	parser.Bool(&cfg.symmetric, "s", "symmetric", "clip negative half waves too")
	parser.String(&cfg.loadState, "ls", "load", "load parameter state from a file")
	parser.String(&cfg.saveState, "ss", "save", "save parameter state to a file when done")
	parser.String(&cfg.logLevel, "ll", "log", "log level (debug, info, warn, error, off)")
	parser.String(&cfg.logFile, "lf", "log-file", "write log output to a file")

	chk(parser.Parse(), "failed to parse arguments")

	switch {
	case processCmd.Used:
		return cmdProcess
	case playCmd.Used:
		return cmdPlay
	case paramsCmd.Used:
		return cmdParams
	}

	parser.ShowHelpAndExit("no command given")
	return cmdNone
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
