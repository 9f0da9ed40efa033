package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/edu3d/stlview/pkg/diag"
	"github.com/edu3d/stlview/pkg/geometry"
	"github.com/edu3d/stlview/pkg/stl"
	"github.com/edu3d/stlview/pkg/viewer"
)

// Server pushes mesh and camera updates to browser clients over
// WebSocket. Every connected client receives the latest mesh frame on
// connect and a fresh broadcast whenever the model reloads.
type Server struct {
	sink     diag.Sink
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
	last    []byte
}

// New creates a Server. The sink may be nil.
func New(sink diag.Sink) *Server {
	return &Server{
		sink: diag.OrDiscard(sink),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// wire types, float32 to keep frames small
type wireVec [3]float32

type wireTriangle struct {
	Vertices [3]wireVec `json:"vertices"`
	Normals  [3]wireVec `json:"normals"`
}

type meshFrame struct {
	Type      string         `json:"type"`
	Name      string         `json:"name"`
	Triangles []wireTriangle `json:"triangles"`
	Bounds    [2]wireVec     `json:"bounds"`
}

type cameraFrame struct {
	Type     string  `json:"type"`
	Position wireVec `json:"position"`
	Target   wireVec `json:"target"`
	Distance float64 `json:"distance"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func toWire(v geometry.Vector3) wireVec {
	return wireVec{float32(v.X), float32(v.Y), float32(v.Z)}
}

// PublishMesh broadcasts a normalized mesh to all clients and stores
// it as the greeting frame for future connections.
func (s *Server) PublishMesh(name string, mesh *stl.NormalizedMesh) {
	frame := meshFrame{
		Type:      "mesh",
		Name:      name,
		Triangles: make([]wireTriangle, len(mesh.Triangles)),
		Bounds:    [2]wireVec{toWire(mesh.Bounds.Min), toWire(mesh.Bounds.Max)},
	}
	for i, t := range mesh.Triangles {
		n := mesh.VertexNormals[i]
		frame.Triangles[i] = wireTriangle{
			Vertices: [3]wireVec{toWire(t.V1), toWire(t.V2), toWire(t.V3)},
			Normals:  [3]wireVec{toWire(n[0]), toWire(n[1]), toWire(n[2])},
		}
	}

	data, err := json.Marshal(frame)
	if err != nil {
		s.sink.Log("server.marshal_error", map[string]any{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.last = data
	s.mu.Unlock()

	s.broadcast(data)
}

// PublishCamera broadcasts the current camera frame.
func (s *Server) PublishCamera(frame viewer.CameraFrame) {
	data, err := json.Marshal(cameraFrame{
		Type:     "camera",
		Position: toWire(frame.Position),
		Target:   toWire(frame.Target),
		Distance: frame.Distance,
	})
	if err != nil {
		return
	}
	s.broadcast(data)
}

// PublishError broadcasts a load failure so browser clients can show it.
func (s *Server) PublishError(message string) {
	data, err := json.Marshal(errorFrame{Type: "error", Message: message})
	if err != nil {
		return
	}
	s.broadcast(data)
}

func (s *Server) broadcast(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for client := range s.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			s.sink.Log("server.write_error", map[string]any{"error": err.Error()})
			client.Close()
			delete(s.clients, client)
		}
	}
}

// HandleWebSocket upgrades the connection, sends the latest mesh frame
// if one exists, and keeps the connection registered until the client
// goes away.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.sink.Log("server.upgrade_error", map[string]any{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	greeting := s.last
	s.mu.Unlock()

	s.sink.Log("server.client_connected", map[string]any{"remote": conn.RemoteAddr().String()})

	if greeting != nil {
		conn.WriteMessage(websocket.TextMessage, greeting)
	}

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
		s.sink.Log("server.client_disconnected", map[string]any{"remote": conn.RemoteAddr().String()})
	}()

	// Drain client messages for keep-alive until disconnect
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ClientCount reports the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Handler returns an http.Handler serving the viewer page at / and
// the WebSocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWebSocket)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(viewerPage))
	})
	return mux
}
