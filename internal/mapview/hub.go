package mapview

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/ev-fleet-dashboard/internal/models"
)

// DefaultWriteWait bounds each write to a map client.
const DefaultWriteWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub is a Surface that forwards commands to connected browser maps.
//
// Each client subscribes with the selection its page was rendered for
// (the "selected" query parameter of /ws/map). Commands only reach clients
// with the same selection, and a new client is replayed the last render for
// its selection so it never jumps to another page's focus.
type Hub struct {
	mu         sync.Mutex
	clients    map[*websocket.Conn]string
	lastRender map[string][]byte
	// flyKey is the selection of the latest render; FlyTo follows it.
	flyKey string

	writeWait time.Duration
}

// NewHub creates a hub with no clients.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]string),
		lastRender: make(map[string][]byte),
		writeWait:  DefaultWriteWait,
	}
}

// selectionKey identifies a subscription; "" means no selection.
func selectionKey(selectedID *int) string {
	if selectedID == nil {
		return ""
	}
	return strconv.Itoa(*selectedID)
}

// Render sends a full redraw to clients showing the same selection.
func (h *Hub) Render(markers []models.Marker, focus models.ViewFocus, selectedID *int) {
	data, err := json.Marshal(RenderCommand(markers, focus, selectedID))
	if err != nil {
		log.WithError(err).Error("Failed to marshal render command")
		return
	}
	key := selectionKey(selectedID)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastRender[key] = data
	h.flyKey = key
	h.broadcastLocked(key, data)
}

// FlyTo sends an animated move to the clients of the latest render.
func (h *Hub) FlyTo(center models.Location, zoom int) {
	data, err := json.Marshal(FlyToCommand(center, zoom))
	if err != nil {
		log.WithError(err).Error("Failed to marshal flyTo command")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(h.flyKey, data)
}

// ClientCount reports how many map clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and registers the connection under the
// selection given in the query string.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := selectionKey(models.ParseViewState(r.URL.Query()).SelectedID)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("Map websocket upgrade failed")
		return
	}

	// Writes to a connection happen under h.mu, including the replay.
	h.mu.Lock()
	if last, ok := h.lastRender[key]; ok {
		if err := h.write(conn, last); err != nil {
			h.mu.Unlock()
			_ = conn.Close()
			return
		}
	}
	h.clients[conn] = key
	h.mu.Unlock()

	log.WithFields(log.Fields{
		"remote_addr": r.RemoteAddr,
		"selection":   key,
	}).Info("Map client connected")
	go h.readPump(conn)
}

// Close disconnects every map client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		_ = c.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) write(c *websocket.Conn, data []byte) error {
	if err := c.SetWriteDeadline(time.Now().Add(h.writeWait)); err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, data)
}

// broadcastLocked must be called with h.mu held.
func (h *Hub) broadcastLocked(key string, data []byte) {
	for c, k := range h.clients {
		if k != key {
			continue
		}
		if err := h.write(c, data); err != nil {
			log.WithError(err).Debug("Dropping map client")
			_ = c.Close()
			delete(h.clients, c)
		}
	}
}

// readPump drains client frames until the connection closes.
func (h *Hub) readPump(c *websocket.Conn) {
	defer h.remove(c)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.Close()
}
