package capture

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Telemetry is one status push to connected monitor clients: the
// receive state machine's current state plus the diagnostics a caller
// might want while a capture session runs (spec.md §4.9's state names,
// a status message, and the measured CFO).
type Telemetry struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// StatePayload reports a receive state-machine transition.
type StatePayload struct {
	State   string  `json:"state"`
	Message string  `json:"message"`
	FDelta  float64 `json:"fDelta,omitempty"`
}

// Monitor broadcasts capture/decode telemetry over WebSocket to any
// connected observers, adapted from the teacher's WSHub
// (internal/server/websocket.go) with file-transfer progress payloads
// replaced by receive-state-machine telemetry.
type Monitor struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
	log     zerolog.Logger
}

// NewMonitor creates an empty monitor.
func NewMonitor(log zerolog.Logger) *Monitor {
	return &Monitor{
		clients: make(map[*websocket.Conn]bool),
		log:     log,
	}
}

// Upgrade promotes an HTTP request to a WebSocket connection and
// registers it as a monitor client.
func (m *Monitor) Upgrade(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.clients[conn] = true
	m.mu.Unlock()
	m.log.Info().Int("clients", len(m.clients)).Msg("monitor client connected")
	return nil
}

func (m *Monitor) removeClient(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.clients, conn)
	conn.Close()
	m.log.Info().Int("clients", len(m.clients)).Msg("monitor client disconnected")
}

// Broadcast sends msg to every connected monitor client, dropping any
// client whose connection has gone bad.
func (m *Monitor) Broadcast(msg Telemetry) {
	data, err := json.Marshal(msg)
	if err != nil {
		m.log.Error().Err(err).Msg("telemetry marshal failed")
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for conn := range m.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			go m.removeClient(conn)
		}
	}
}

// BroadcastState reports a receive state-machine transition to every
// connected monitor client.
func (m *Monitor) BroadcastState(state, message string, fDelta float64) {
	m.Broadcast(Telemetry{
		Type: "state",
		Payload: StatePayload{
			State:   state,
			Message: message,
			FDelta:  fDelta,
		},
	})
}
