// Package ws shares camera poses between viewers over websockets.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"go_camera/camera"
)

const writeWait = time.Second

var ErrClosed = errors.New("ws: connection closed")

type peer struct {
	conn    *websocket.Conn
	lock    sync.Mutex // serializes writes
	pose    camera.Pose
	hasPose bool
}

func (p *peer) writeJSON(v any) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(v)
}

type Server struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	lock  sync.Mutex
	peers *Storage[*peer]
	tick  uint64
}

func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Poses are public and viewers connect from native tools and
				// dashboards on other hosts, so there is no origin to pin.
				return true
			},
		},
		peers: NewStorage[*peer](),
	}
}

// Handler routes /ws to the pose stream and /poses to a JSON snapshot.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.serveWS).Methods(http.MethodGet)
	r.HandleFunc("/poses", s.servePoses).Methods(http.MethodGet)
	return r
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	// Hold the write lock until Hello is out so a concurrent Broadcast cannot
	// reach the viewer first.
	p := &peer{conn: conn}
	p.lock.Lock()
	s.lock.Lock()
	id := s.peers.Emplace(p)
	s.lock.Unlock()

	log := s.logger.With("client", id)
	log.Info("viewer connected", "remote", r.RemoteAddr)

	defer func() {
		s.lock.Lock()
		s.peers.Remove(id)
		s.lock.Unlock()
		conn.Close()
		log.Info("viewer disconnected")
	}()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	err = conn.WriteJSON(Hello{ID: id})
	p.lock.Unlock()
	if err != nil {
		log.Warn("hello failed", "err", err)
		return
	}

	for {
		var pose camera.Pose
		if err := conn.ReadJSON(&pose); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("read failed", "err", err)
			}
			return
		}
		s.lock.Lock()
		p.pose = pose
		p.hasPose = true
		s.lock.Unlock()
	}
}

func (s *Server) servePoses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Snapshot()); err != nil {
		s.logger.Warn("encode snapshot", "err", err)
	}
}

// Snapshot returns every viewer that has published a pose, ordered by id.
func (s *Server) Snapshot() Snapshot {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.snapshotLocked()
}

func (s *Server) snapshotLocked() Snapshot {
	snap := Snapshot{Tick: s.tick, Poses: make([]Message, 0, s.peers.Len())}
	s.peers.Each(func(id int, p *peer) {
		if p.hasPose {
			snap.Poses = append(snap.Poses, Message{Client: id, Pose: p.pose})
		}
	})
	return snap
}

// Clients is the number of connected viewers.
func (s *Server) Clients() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.peers.Len()
}

// Broadcast advances the tick and sends the resulting snapshot to every
// connected viewer. Write failures are logged; the reader side notices the
// broken connection and drops the viewer.
func (s *Server) Broadcast() Snapshot {
	s.lock.Lock()
	s.tick++
	snap := s.snapshotLocked()
	targets := make([]*peer, 0, s.peers.Len())
	s.peers.Each(func(_ int, p *peer) {
		targets = append(targets, p)
	})
	s.lock.Unlock()

	for _, p := range targets {
		if err := p.writeJSON(snap); err != nil {
			s.logger.Debug("broadcast failed", "tick", snap.Tick, "err", err)
		}
	}
	return snap
}

// Poll calls f every interval until ctx is done.
func (s *Server) Poll(ctx context.Context, interval time.Duration, f func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f()
		}
	}
}

// Run broadcasts a snapshot every interval until ctx is done.
func (s *Server) Run(ctx context.Context, interval time.Duration) {
	s.logger.Info("broadcasting poses", "interval", interval)
	s.Poll(ctx, interval, func() {
		s.Broadcast()
	})
}

// Close disconnects every viewer.
func (s *Server) Close() {
	s.lock.Lock()
	targets := make([]*peer, 0, s.peers.Len())
	s.peers.Each(func(_ int, p *peer) {
		targets = append(targets, p)
	})
	s.lock.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, p := range targets {
		p.lock.Lock()
		p.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		p.lock.Unlock()
		p.conn.Close()
	}
}
