// Command ofdmctl drives the OFDM modem core from the command line:
// encode a payload to a sample file, or decode a sample file back to
// bytes, optionally through the simulated channel collaborator.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/jeongseonghan/ofdm-modem/internal/capture"
	"github.com/jeongseonghan/ofdm-modem/internal/channel"
	"github.com/jeongseonghan/ofdm-modem/internal/corpus"
	"github.com/jeongseonghan/ofdm-modem/internal/modem"
	"github.com/jeongseonghan/ofdm-modem/internal/ofdm"
	"github.com/jeongseonghan/ofdm-modem/internal/sigio"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	var (
		transmitPath = pflag.StringP("transmit", "t", "", "encode a payload and write a sample file")
		receivePath  = pflag.StringP("receive", "r", "", "read a sample file and decode it")
		inputFile    = pflag.StringP("input", "i", "", "payload file for --transmit (default: Ozymandias corpus)")
		start        = pflag.Int("start", 0, "slice the captured samples starting at this index")
		stop         = pflag.Int("stop", 0, "slice the captured samples ending at this index (0 = end)")
		modName      = pflag.StringP("modulation", "m", "bpsk", "modulation: bpsk or qpsk")
		guardBands   = pflag.Bool("guard-bands", true, "enable OFDM guard-band subcarriers")
		ecc          = pflag.Bool("ecc", false, "wrap the frame in Reed-Solomon RS(255,223)")
		simulate     = pflag.Bool("simulate", false, "pass the encoded stream through the simulated channel before writing")
		snr          = pflag.Float64("snr", 30.0, "simulated channel SNR in dB (with --simulate)")
		timingError  = pflag.Bool("timing-error", false, "apply a simulated timing-error phase ramp (with --simulate)")
		listDevices  = pflag.Bool("list-devices", false, "list audio capture/playback devices and exit")
	)
	pflag.Parse()

	if *listDevices {
		if err := capture.InitAudio(); err != nil {
			log.Fatal().Err(err).Msg("init audio")
		}
		defer capture.TerminateAudio()
		if err := runListDevices(); err != nil {
			log.Fatal().Err(err).Msg("list devices")
		}
		return
	}

	mod, err := parseModulation(*modName)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid --modulation")
	}
	opts := ofdm.Options{Modulation: mod, GuardBands: *guardBands, ECC: *ecc}

	switch {
	case *transmitPath != "":
		if err := runTransmit(*transmitPath, *inputFile, opts, *simulate, *snr, *timingError); err != nil {
			log.Fatal().Err(err).Msg("transmit failed")
		}
	case *receivePath != "":
		if err := runReceive(*receivePath, *start, *stop, opts); err != nil {
			log.Fatal().Err(err).Msg("receive failed")
		}
	default:
		fmt.Fprintln(os.Stderr, "ofdmctl: one of --transmit or --receive is required")
		pflag.Usage()
		os.Exit(2)
	}
}

func parseModulation(name string) (modem.Modulation, error) {
	switch name {
	case "bpsk":
		return modem.BPSK, nil
	case "qpsk":
		return modem.QPSK, nil
	default:
		return 0, fmt.Errorf("unknown modulation %q (want bpsk or qpsk)", name)
	}
}

func runTransmit(path, inputFile string, opts ofdm.Options, simulate bool, snrDB float64, timingError bool) error {
	var payload []byte
	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		payload = data
	} else {
		payload = corpus.Fill(400)
	}

	samples, err := ofdm.Encode(payload, opts)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if simulate {
		samples = channel.Apply(samples, channel.Options{SNRdB: snrDB, TimingError: timingError})
		log.Info().Float64("snr_db", snrDB).Bool("timing_error", timingError).Msg("passed through simulated channel")
	}

	if err := os.WriteFile(path, sigio.SigToBytes(samples), 0o644); err != nil {
		return fmt.Errorf("write sample file: %w", err)
	}
	log.Info().Str("path", path).Int("payload_bytes", len(payload)).Int("samples", len(samples)).Msg("transmit complete")
	return nil
}

func runReceive(path string, start, stop int, opts ofdm.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read sample file: %w", err)
	}
	samples, err := sigio.BytesToSig(data)
	if err != nil {
		return fmt.Errorf("parse sample file: %w", err)
	}

	if stop > 0 && stop < len(samples) {
		samples = samples[:stop]
	}
	if start > 0 && start < len(samples) {
		samples = samples[start:]
	}

	result, payload, err := ofdm.Decode(samples, opts)
	if err != nil {
		if result != nil {
			log.Error().Str("state", result.State.String()).Err(err).Msg("receive failed")
		}
		return err
	}

	os.Stdout.Write(payload)
	log.Info().Str("state", result.State.String()).Float64("f_delta", result.FDelta).Int("payload_bytes", len(payload)).Msg("receive complete")
	return nil
}

func runListDevices() error {
	devices, err := capture.ListDevices()
	if err != nil {
		return err
	}
	for i, d := range devices {
		tag := ""
		if d.IsDefault {
			tag = " [default]"
		}
		fmt.Printf("%d: %s (in:%d out:%d rate:%.0f)%s\n", i, d.Name, d.MaxInputChannels, d.MaxOutputChannels, d.DefaultSampleRate, tag)
	}
	return nil
}
