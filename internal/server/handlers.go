// Package server exposes the modem core over HTTP: upload a payload,
// transmit it to a sample file (optionally through the simulated
// channel), upload a captured sample file and decode it, list audio
// devices, and stream capture-state telemetry over a websocket. It is an
// external collaborator around the core (spec.md §1), not part of it.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jeongseonghan/ofdm-modem/internal/capture"
	"github.com/jeongseonghan/ofdm-modem/internal/channel"
	"github.com/jeongseonghan/ofdm-modem/internal/modem"
	"github.com/jeongseonghan/ofdm-modem/internal/ofdm"
	"github.com/jeongseonghan/ofdm-modem/internal/sigio"
	syncstate "github.com/jeongseonghan/ofdm-modem/internal/sync"
)

// Handlers holds the HTTP API handlers.
type Handlers struct {
	monitor   *capture.Monitor
	uploadDir string
	outputDir string
	log       zerolog.Logger
	mu        sync.Mutex
}

// NewHandlers creates new API handlers rooted at uploadDir (payloads and
// captured sample files) and outputDir (encoded sample files and decoded
// payloads).
func NewHandlers(uploadDir, outputDir string, log zerolog.Logger) *Handlers {
	return &Handlers{
		monitor:   capture.NewMonitor(log),
		uploadDir: uploadDir,
		outputDir: outputDir,
		log:       log,
	}
}

// HandleWebSocket upgrades the connection and registers it for telemetry
// broadcasts.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if err := h.monitor.Upgrade(w, r); err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
	}
}

// HandleUpload saves a posted file (a payload to transmit, or a
// previously captured sample file to decode) into uploadDir.
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("parse form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("get file: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		http.Error(w, fmt.Sprintf("create upload dir: %v", err), http.StatusInternalServerError)
		return
	}
	outPath := filepath.Join(h.uploadDir, filepath.Base(header.Filename))
	outFile, err := os.Create(outPath)
	if err != nil {
		http.Error(w, fmt.Sprintf("create file: %v", err), http.StatusInternalServerError)
		return
	}
	defer outFile.Close()

	written, err := io.Copy(outFile, file)
	if err != nil {
		http.Error(w, fmt.Sprintf("save file: %v", err), http.StatusInternalServerError)
		return
	}

	h.monitor.BroadcastState("uploaded", fmt.Sprintf("received %s (%d bytes)", header.Filename, written), 0)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"filename": header.Filename,
		"size":     written,
	})
}

// transmitRequest mirrors ofdmctl's flag set over JSON.
type transmitRequest struct {
	Filename    string  `json:"filename"`
	Modulation  string  `json:"modulation"`
	GuardBands  bool    `json:"guardBands"`
	ECC         bool    `json:"ecc"`
	Simulate    bool    `json:"simulate"`
	SNRdB       float64 `json:"snrDb"`
	TimingError bool    `json:"timingError"`
}

// HandleSend encodes a previously uploaded payload file into a sample
// file and writes it under outputDir, broadcasting progress over the
// websocket.
func (h *Handlers) HandleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req transmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("parse request: %v", err), http.StatusBadRequest)
		return
	}

	mod, err := parseModulation(req.Modulation)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payload, err := os.ReadFile(filepath.Join(h.uploadDir, filepath.Base(req.Filename)))
	if err != nil {
		http.Error(w, fmt.Sprintf("read payload: %v", err), http.StatusNotFound)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.monitor.BroadcastState("encoding", "building OFDM frame", 0)
	samples, err := ofdm.Encode(payload, ofdm.Options{Modulation: mod, GuardBands: req.GuardBands, ECC: req.ECC})
	if err != nil {
		h.monitor.BroadcastState("error", err.Error(), 0)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if req.Simulate {
		h.monitor.BroadcastState("simulating", fmt.Sprintf("channel SNR %.1f dB", req.SNRdB), 0)
		samples = channel.Apply(samples, channel.Options{SNRdB: req.SNRdB, TimingError: req.TimingError})
	}

	if err := os.MkdirAll(h.outputDir, 0o755); err != nil {
		http.Error(w, fmt.Sprintf("create output dir: %v", err), http.StatusInternalServerError)
		return
	}
	outName := req.Filename + ".sig"
	outPath := filepath.Join(h.outputDir, outName)
	if err := os.WriteFile(outPath, sigio.SigToBytes(samples), 0o644); err != nil {
		h.monitor.BroadcastState("error", err.Error(), 0)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.monitor.BroadcastState("completed", fmt.Sprintf("wrote %d samples to %s", len(samples), outName), 0)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"samples": len(samples),
		"file":    outName,
	})
}

type receiveRequest struct {
	Filename   string `json:"filename"`
	Modulation string `json:"modulation"`
	GuardBands bool   `json:"guardBands"`
	ECC        bool   `json:"ecc"`
}

// HandleReceive decodes a previously uploaded sample file and writes the
// recovered payload under outputDir.
func (h *Handlers) HandleReceive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req receiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("parse request: %v", err), http.StatusBadRequest)
		return
	}

	mod, err := parseModulation(req.Modulation)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := os.ReadFile(filepath.Join(h.uploadDir, filepath.Base(req.Filename)))
	if err != nil {
		http.Error(w, fmt.Sprintf("read sample file: %v", err), http.StatusNotFound)
		return
	}
	samples, err := sigio.BytesToSig(data)
	if err != nil {
		http.Error(w, fmt.Sprintf("parse sample file: %v", err), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.monitor.BroadcastState(syncstate.Syncing.String(), "synchronizing and equalizing", 0)
	result, payload, err := ofdm.Decode(samples, ofdm.Options{Modulation: mod, GuardBands: req.GuardBands, ECC: req.ECC})
	if err != nil {
		h.monitor.BroadcastState(result.State.String(), err.Error(), result.FDelta)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := os.MkdirAll(h.outputDir, 0o755); err != nil {
		http.Error(w, fmt.Sprintf("create output dir: %v", err), http.StatusInternalServerError)
		return
	}
	outName := strings.TrimSuffix(filepath.Base(req.Filename), filepath.Ext(req.Filename)) + ".payload"
	if err := os.WriteFile(filepath.Join(h.outputDir, outName), payload, 0o644); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.monitor.BroadcastState(result.State.String(), fmt.Sprintf("recovered %d payload bytes", len(payload)), result.FDelta)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"payloadBytes": len(payload),
		"file":         outName,
	})
}

// HandleDevices lists available audio capture/playback devices. PortAudio
// is initialized once for the life of the process (cmd/server/main.go);
// this handler only queries it.
func (h *Handlers) HandleDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := capture.ListDevices()
	if err != nil {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "error", "message": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"devices": devices,
	})
}

// HandleDownload serves a file out of outputDir for download.
func (h *Handlers) HandleDownload(w http.ResponseWriter, r *http.Request) {
	filename := strings.TrimPrefix(r.URL.Path, "/api/download/")
	if filename == "" {
		http.Error(w, "filename required", http.StatusBadRequest)
		return
	}
	filePath := filepath.Join(h.outputDir, filepath.Base(filename))
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, filePath)
}

func parseModulation(name string) (modem.Modulation, error) {
	switch strings.ToLower(name) {
	case "", "bpsk":
		return modem.BPSK, nil
	case "qpsk":
		return modem.QPSK, nil
	default:
		return 0, fmt.Errorf("unknown modulation %q (want bpsk or qpsk)", name)
	}
}
