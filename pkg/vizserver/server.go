// Package vizserver 通过 HTTP 和 websocket 向外部观察者发布区域快照
package vizserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gonewx/penguin/pkg/academy"
	"github.com/gonewx/penguin/pkg/game"
	"github.com/gonewx/penguin/pkg/logger"
)

// Source 快照来源（通常是 *academy.Academy）
type Source interface {
	Snapshots() []game.Snapshot
	Snapshot(id string) (game.Snapshot, error)
	Reset(id string) error
}

// Server 区域可视化服务
type Server struct {
	addr     string
	source   Source
	hub      *Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewServer 创建可视化服务
//
// 参数:
//   - addr: 监听地址（如 ":8080"）
//   - source: 快照来源
//   - log: 日志，可为 nil
func NewServer(addr string, source Source, log *zap.Logger) *Server {
	l := logger.OrNop(log).Named("viz")
	return &Server{
		addr:   addr,
		source: source,
		hub:    NewHub(l),
		logger: l,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Hub 返回观察者集合
func (s *Server) Hub() *Hub { return s.hub }

// Broadcast 推送最新快照给所有观察者
func (s *Server) Broadcast() {
	s.hub.Broadcast(s.source.Snapshots())
}

// Handler 返回带访问日志的路由
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/areas", s.handleList).Methods(http.MethodGet)
	router.HandleFunc("/areas/{id:[a-zA-Z0-9\\-]+}", s.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/areas/{id:[a-zA-Z0-9\\-]+}/reset", s.handleReset).Methods(http.MethodPost)
	router.HandleFunc("/areas/{id:[a-zA-Z0-9\\-]+}/ws", s.handleWebsocket).Methods(http.MethodGet)

	accessLog := zap.NewStdLog(s.logger.Named("access")).Writer()
	return handlers.CombinedLoggingHandler(accessLog, router)
}

// ListenAndServe 启动服务，ctx 取消时优雅关闭
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("viz listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("viz server failed: %w", err)
	case <-ctx.Done():
		s.hub.CloseAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("viz server shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.source.Snapshots())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	snap, err := s.source.Snapshot(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.source.Reset(id); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("area reset requested", zap.String("area", id))

	snap, err := s.source.Snapshot(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	snap, err := s.source.Snapshot(id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	watcher := NewWatcher(conn)
	s.hub.Add(id, watcher)
	defer func() {
		s.hub.Remove(id, watcher)
		watcher.Close()
		s.logger.Debug("watcher left", zap.String("area", id), zap.Int("watchers", s.hub.Count(id)))
	}()
	s.logger.Debug("watcher joined", zap.String("area", id), zap.Int("watchers", s.hub.Count(id)))

	// 首帧立即发送，不等下一次广播
	if data, err := encodeSnapshot(snap); err == nil {
		watcher.Send(data)
	}

	// 读取客户端消息只为感知断开
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, academy.ErrEnvironmentNotFound) {
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
