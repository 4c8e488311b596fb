// Command server runs the HTTP front end around the modem core: upload a
// payload or a captured sample file, trigger transmit/receive, list audio
// devices, and watch capture-state telemetry over a websocket.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/jeongseonghan/ofdm-modem/internal/capture"
	"github.com/jeongseonghan/ofdm-modem/internal/server"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	var (
		addr        = pflag.String("addr", "0.0.0.0:8080", "server listen address")
		uploadDir   = pflag.String("upload-dir", "./uploads", "directory for uploaded payloads and captures")
		outputDir   = pflag.String("output-dir", "./output", "directory for encoded sample files and decoded payloads")
		listDevices = pflag.Bool("list-devices", false, "list audio devices and exit")
	)
	pflag.Parse()

	if err := capture.InitAudio(); err != nil {
		log.Fatal().Err(err).Msg("init audio")
	}
	defer capture.TerminateAudio()

	if *listDevices {
		devices, err := capture.ListDevices()
		if err != nil {
			log.Fatal().Err(err).Msg("list devices")
		}
		for i, d := range devices {
			log.Info().Int("index", i).Str("name", d.Name).Int("in", d.MaxInputChannels).
				Int("out", d.MaxOutputChannels).Float64("rate", d.DefaultSampleRate).Bool("default", d.IsDefault).
				Msg("audio device")
		}
		return
	}

	if err := os.MkdirAll(*uploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create upload dir")
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create output dir")
	}

	handlers := server.NewHandlers(*uploadDir, *outputDir, log)
	srv := server.NewServer(*addr, handlers, log)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("shutting down")
		capture.TerminateAudio()
		os.Exit(0)
	}()

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
