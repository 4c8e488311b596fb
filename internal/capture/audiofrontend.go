package capture

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Front-end sample parameters. FramesPerBuf is sized to a whole number
// of OFDM blocks (spec.md's 80-sample block) so a capture loop can push
// block-aligned buffers to the driver.
const (
	SampleRate   = 44100
	blocksPerBuf = 64
	FramesPerBuf = 80 * blocksPerBuf
	numChannels  = 1
)

// AudioFrontend is a live capture/playback collaborator standing in for
// an SDR: it captures real-valued PCM audio and presents it as complex
// baseband samples (imaginary part zero), and accepts complex samples for
// playback by writing their real part. Adapted from the teacher's
// internal/audio AudioIO, generalized from raw float32 buffers to the
// complex128 samples the core pipeline consumes and produces.
type AudioFrontend struct {
	inputStream  *portaudio.Stream
	outputStream *portaudio.Stream
	inputBuf     []float32
	outputBuf    []float32
	mu           sync.Mutex
}

// InitAudio initializes the PortAudio runtime; call once at process
// start.
func InitAudio() error {
	return portaudio.Initialize()
}

// TerminateAudio releases the PortAudio runtime.
func TerminateAudio() error {
	return portaudio.Terminate()
}

// NewAudioFrontend allocates a front-end with default buffer sizes.
func NewAudioFrontend() *AudioFrontend {
	return &AudioFrontend{
		inputBuf:  make([]float32, FramesPerBuf),
		outputBuf: make([]float32, FramesPerBuf),
	}
}

// OpenInput opens the default input stream for capture.
func (a *AudioFrontend) OpenInput() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stream, err := portaudio.OpenDefaultStream(numChannels, 0, float64(SampleRate), FramesPerBuf, a.inputBuf)
	if err != nil {
		return fmt.Errorf("capture: open input stream: %w", err)
	}
	a.inputStream = stream
	return a.inputStream.Start()
}

// OpenOutput opens the default output stream for playback.
func (a *AudioFrontend) OpenOutput() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stream, err := portaudio.OpenDefaultStream(0, numChannels, float64(SampleRate), FramesPerBuf, a.outputBuf)
	if err != nil {
		return fmt.Errorf("capture: open output stream: %w", err)
	}
	a.outputStream = stream
	return a.outputStream.Start()
}

// CaptureBlock blocks until FramesPerBuf real samples are read, and
// returns them as complex baseband samples with zero imaginary part.
func (a *AudioFrontend) CaptureBlock() ([]complex128, error) {
	if a.inputStream == nil {
		return nil, fmt.Errorf("capture: input stream not opened")
	}
	if err := a.inputStream.Read(); err != nil {
		return nil, fmt.Errorf("capture: read: %w", err)
	}
	out := make([]complex128, len(a.inputBuf))
	for i, v := range a.inputBuf {
		out[i] = complex(float64(v), 0)
	}
	return out, nil
}

// PlaySamples writes the real part of samples to the output stream,
// FramesPerBuf at a time, zero-padding a short final chunk.
func (a *AudioFrontend) PlaySamples(samples []complex128) error {
	if a.outputStream == nil {
		return fmt.Errorf("capture: output stream not opened")
	}
	for off := 0; off < len(samples); off += FramesPerBuf {
		end := off + FramesPerBuf
		chunk := make([]float32, FramesPerBuf)
		if end > len(samples) {
			end = len(samples)
		}
		for i, v := range samples[off:end] {
			chunk[i] = float32(real(v))
		}
		copy(a.outputBuf, chunk)
		if err := a.outputStream.Write(); err != nil {
			return fmt.Errorf("capture: write: %w", err)
		}
	}
	return nil
}

// Close closes both streams, returning the first error encountered.
func (a *AudioFrontend) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var firstErr error
	if a.inputStream != nil {
		if err := a.inputStream.Close(); err != nil {
			firstErr = err
		}
		a.inputStream = nil
	}
	if a.outputStream != nil {
		if err := a.outputStream.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.outputStream = nil
	}
	return firstErr
}

// DeviceInfo describes one audio device (input/output capability).
type DeviceInfo struct {
	Name              string
	MaxInputChannels  int
	MaxOutputChannels int
	DefaultSampleRate float64
	IsDefault         bool
}

// ListDevices returns every audio device PortAudio can see, flagging the
// system default input/output.
func ListDevices() ([]DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("capture: list devices: %w", err)
	}
	defaultIn, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, fmt.Errorf("capture: default input device: %w", err)
	}
	defaultOut, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return nil, fmt.Errorf("capture: default output device: %w", err)
	}

	result := make([]DeviceInfo, 0, len(devices))
	for _, d := range devices {
		result = append(result, DeviceInfo{
			Name:              d.Name,
			MaxInputChannels:  d.MaxInputChannels,
			MaxOutputChannels: d.MaxOutputChannels,
			DefaultSampleRate: d.DefaultSampleRate,
			IsDefault:         d.Name == defaultIn.Name || d.Name == defaultOut.Name,
		})
	}
	return result, nil
}
