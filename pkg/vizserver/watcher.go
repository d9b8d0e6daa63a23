package vizserver

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	watcherBacklog = 16
)

// Watcher 一个观察某区域的 websocket 连接
//
// 发送走带缓冲的队列，慢速客户端丢帧而不会阻塞广播。
type Watcher struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	closed chan struct{}
	once   sync.Once
}

// NewWatcher 包装连接并启动写协程
func NewWatcher(conn *websocket.Conn) *Watcher {
	w := &Watcher{
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan []byte, watcherBacklog),
		closed: make(chan struct{}),
	}
	go w.writeLoop()
	return w
}

// ID 返回观察者标识
func (w *Watcher) ID() string { return w.id }

// Send 排队一帧消息，队列满或已关闭时丢弃
//
// 返回:
//   - bool: 是否成功入队
func (w *Watcher) Send(msg []byte) bool {
	select {
	case <-w.closed:
		return false
	default:
	}
	select {
	case w.send <- msg:
		return true
	default:
		return false
	}
}

// Close 关闭连接，可重复调用
func (w *Watcher) Close() {
	w.once.Do(func() {
		close(w.closed)
		_ = w.conn.Close()
	})
}

// Done 连接关闭时关闭的通道
func (w *Watcher) Done() <-chan struct{} { return w.closed }

func (w *Watcher) writeLoop() {
	for {
		select {
		case <-w.closed:
			return
		case msg := <-w.send:
			_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				w.Close()
				return
			}
		}
	}
}
