// Command blsaw renders the band-limited sawtooth oscillator to a WAV
// file, reports its spectrum and optionally plays it.
//
// Usage:
//
//	blsaw -note A4 -seconds 2 -out a4.wav
//	blsaw -score "C4@0,G4@0.5,C5@1" -seconds 1.5 -play
//	blsaw -note 100 -analyze -mode nearest
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/justyntemme/blsaw/pkg/dsp/analysis"
	"github.com/justyntemme/blsaw/pkg/dsp/fixed"
	"github.com/justyntemme/blsaw/pkg/dsp/oscillator"
	"github.com/justyntemme/blsaw/pkg/dsp/wavetable"
	"github.com/justyntemme/blsaw/pkg/framework/debug"
	"github.com/justyntemme/blsaw/pkg/midi"
	"github.com/justyntemme/blsaw/pkg/playback"
	"github.com/justyntemme/blsaw/pkg/render"
	"github.com/justyntemme/blsaw/pkg/simpleva"
)

const analysisSize = 8192

type options struct {
	cfg      render.Config
	bank     string
	out      string
	play     bool
	analyze  bool
	logLevel string
	logFile  string
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("blsaw", flag.ContinueOnError)
	defaults := render.DefaultConfig()

	note := fs.String("note", "C4", "Note name or MIDI number")
	fine := fs.Uint("fine", 0, "Fine pitch in 1/256 semitone (0-255)")
	score := fs.String("score", "", "Event list NOTE[+FINE]@SECONDS or off@SECONDS, comma separated (overrides -note)")
	seconds := fs.Float64("seconds", defaults.Seconds, "Duration in seconds")
	rate := fs.Int("rate", defaults.SampleRate, "Sample rate in Hz")
	block := fs.Int("block", defaults.BlockSize, "Samples per Cycle call")
	mode := fs.String("mode", defaults.Mode.String(), "Sampler mode: blend or nearest")
	bank := fs.String("bank", "saw", "Wavetable bank: saw or square")
	out := fs.String("out", "", "Output WAV path")
	play := fs.Bool("play", false, "Play through the default audio device")
	analyze := fs.Bool("analyze", false, "Print level and alias statistics")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error, off")
	logFile := fs.String("log-file", "", "Write logs to this file instead of stderr")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{
		cfg:      defaults,
		bank:     *bank,
		out:      *out,
		play:     *play,
		analyze:  *analyze,
		logLevel: *logLevel,
		logFile:  *logFile,
	}
	opts.cfg.Seconds = *seconds
	opts.cfg.SampleRate = *rate
	opts.cfg.BlockSize = *block

	m, err := wavetable.ParseMode(*mode)
	if err != nil {
		return options{}, err
	}
	opts.cfg.Mode = m

	if *score != "" {
		events, err := parseScore(*score, *rate)
		if err != nil {
			return options{}, err
		}
		opts.cfg.Score = events
	} else {
		n, err := parseNote(*note)
		if err != nil {
			return options{}, err
		}
		if *fine > 255 {
			return options{}, fmt.Errorf("fine %d out of range 0..255", *fine)
		}
		opts.cfg.Score = []midi.Event{midi.NoteOnEvent{NoteNumber: n, Fine: uint8(*fine), Velocity: 100}}
	}

	if !opts.play && !opts.analyze && opts.out == "" {
		opts.out = "blsaw.wav"
	}
	return opts, opts.cfg.Validate()
}

func selectBank(name string) (*wavetable.Bank, error) {
	switch name {
	case "saw", "sawtooth":
		return wavetable.Sawtooth(), nil
	case "square":
		return wavetable.GenerateSquare(wavetable.DefaultGeneratorConfig())
	default:
		return nil, fmt.Errorf("unknown bank %q", name)
	}
}

func newLogger(opts options) (*debug.Logger, io.Closer, error) {
	level, err := debug.ParseLevel(opts.logLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := debug.New(os.Stderr, "blsaw", debug.DefaultFlags)
	var closer io.Closer = io.NopCloser(nil)
	if opts.logFile != "" {
		if logger, closer, err = debug.NewFileLogger(opts.logFile, "blsaw", debug.DefaultFlags); err != nil {
			return nil, nil, err
		}
	}
	logger.SetLevel(level)
	return logger, closer, nil
}

func newUnit(opts options, logger *debug.Logger) (*simpleva.Unit, error) {
	bank, err := selectBank(opts.bank)
	if err != nil {
		return nil, err
	}
	return simpleva.New(
		simpleva.WithBank(bank, opts.cfg.Mode),
		simpleva.WithSampleRate(float64(opts.cfg.SampleRate)),
		simpleva.WithLogger(logger),
	), nil
}

// firstPitch returns the pitch of the first note-on in score.
func firstPitch(score []midi.Event) (midi.Pitch, bool) {
	for _, e := range score {
		if on, ok := e.(midi.NoteOnEvent); ok {
			return on.Pitch(), true
		}
	}
	return 0, false
}

// report prints level and alias statistics of samples against the
// wavetable unit's naive counterpart at the same pitch.
func report(w io.Writer, samples []int32, cfg render.Config) {
	floats := make([]float32, len(samples))
	fixed.DecodeBuffer(floats, samples)

	levels := analysis.Measure(floats)
	fmt.Fprintf(w, "Frames: %d (%.2fs)\n", len(samples), float64(len(samples))/float64(cfg.SampleRate))
	fmt.Fprintf(w, "  Peak: %.2f dBFS\n", levels.PeakDB())
	fmt.Fprintf(w, "  RMS: %.2f dBFS\n", levels.RMSDB())
	fmt.Fprintf(w, "  DC: %.6f\n", levels.DC)

	pitch, ok := firstPitch(cfg.Score)
	if !ok || len(floats) < analysisSize {
		return
	}
	rate := float64(cfg.SampleRate)
	w0 := midi.W0(pitch, rate)
	f0 := w0 * rate

	fft := analysis.NewFFT(analysisSize, analysis.BlackmanHarrisWindow)
	band := analysis.Harmonics(fft, floats[:analysisSize], rate, f0, 4)

	naive := make([]float32, analysisSize)
	var saw oscillator.NaiveSaw
	saw.Fill(naive, w0)
	ref := analysis.Harmonics(fft, naive, rate, f0, 4)

	fmt.Fprintf(w, "  Fundamental: %.2f Hz (note %.3f, %d harmonics below Nyquist)\n", f0, pitch.Note(), band.Harmonics)
	fmt.Fprintf(w, "  Alias energy: %.1f dB (naive saw %.1f dB)\n", band.AliasDB(), ref.AliasDB())
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer closer.Close()

	unit, err := newUnit(opts, logger)
	if err != nil {
		return err
	}

	r, err := render.NewRenderer(unit, opts.cfg, logger)
	if err != nil {
		return err
	}

	if opts.play {
		if opts.out != "" || opts.analyze {
			logger.Warn("-play streams live; -out and -analyze are ignored")
		}
		player, err := playback.NewPlayer(opts.cfg.SampleRate, logger)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return player.Play(ctx, r)
	}

	samples := r.Render()
	if opts.out != "" {
		if err := render.WriteWAV(opts.out, render.Clip{SampleRate: opts.cfg.SampleRate, Samples: samples}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote: %s\n", opts.out)
	}
	if opts.analyze {
		report(stdout, samples, opts.cfg)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		debug.Error("%v", err)
		os.Exit(1)
	}
}
