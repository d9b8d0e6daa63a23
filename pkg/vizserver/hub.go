package vizserver

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/gonewx/penguin/pkg/game"
)

// message websocket 推送格式
type message struct {
	Type string        `json:"type"`
	Data game.Snapshot `json:"data"`
}

// Hub 按区域分组的观察者集合
type Hub struct {
	mu       sync.RWMutex
	watchers map[string]map[string]*Watcher // 区域 ID -> 观察者 ID -> 观察者
	logger   *zap.Logger
}

// NewHub 创建观察者集合
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		watchers: make(map[string]map[string]*Watcher),
		logger:   logger,
	}
}

// Add 注册一个观察者
func (h *Hub) Add(areaID string, w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers[areaID] == nil {
		h.watchers[areaID] = make(map[string]*Watcher)
	}
	h.watchers[areaID][w.ID()] = w
}

// Remove 注销观察者
func (h *Hub) Remove(areaID string, w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.watchers[areaID], w.ID())
	if len(h.watchers[areaID]) == 0 {
		delete(h.watchers, areaID)
	}
}

// Count 返回某区域的观察者数量
func (h *Hub) Count(areaID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers[areaID])
}

// Broadcast 把每个快照推送给对应区域的观察者
// 没有观察者的区域不做编码
func (h *Hub) Broadcast(snapshots []game.Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, snap := range snapshots {
		watchers := h.watchers[snap.ID]
		if len(watchers) == 0 {
			continue
		}
		data, err := encodeSnapshot(snap)
		if err != nil {
			h.logger.Error("failed to encode snapshot", zap.String("area", snap.ID), zap.Error(err))
			continue
		}
		for _, w := range watchers {
			if !w.Send(data) {
				h.logger.Debug("dropped frame", zap.String("watcher", w.ID()))
			}
		}
	}
}

// CloseAll 关闭所有观察者连接
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ws := range h.watchers {
		for _, w := range ws {
			w.Close()
		}
	}
	h.watchers = make(map[string]map[string]*Watcher)
}

func encodeSnapshot(snap game.Snapshot) ([]byte, error) {
	return json.Marshal(message{Type: "snapshot", Data: snap})
}
