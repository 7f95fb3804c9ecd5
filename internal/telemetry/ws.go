package telemetry

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Dashboard serves the read-only WebSocket feed of book/trade/risk/
// metrics frames used by monitoring UIs. It never accepts orders — it
// is purely an observer of what the engine's sink already published.
type Dashboard struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewDashboard builds a Dashboard broadcasting through hub. The
// upgrader accepts any origin, matching a same-network monitoring
// deployment rather than a public-internet one.
func NewDashboard(hub *Hub, log *zap.Logger) *Dashboard {
	return &Dashboard{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Handler returns the http.Handler to mount at the dashboard's
// WebSocket path.
func (d *Dashboard) Handler() http.Handler {
	return http.HandlerFunc(d.serveWS)
}

func (d *Dashboard) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.log.Warn("dashboard: websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := d.hub.Subscribe(64)
	defer d.hub.Unsubscribe(sub)

	for frame := range sub.ch {
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}
}

// ListenAndServe starts the dashboard's HTTP+WebSocket listener on
// addr, blocking until the server stops or errors.
func (d *Dashboard) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", d.Handler())
	return http.ListenAndServe(addr, mux)
}
