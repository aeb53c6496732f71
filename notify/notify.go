// Package notify forwards presentation changes to a host process (the GUI
// shell or a plugin loader) listening on a Unix domain socket.
package notify

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/moyoez/configd/presentation"
	"github.com/moyoez/configd/tool"
	"github.com/moyoez/configd/types"
)

// NotifyWriteChunkSize is the chunk size when writing payload to Unix socket (avoid large single write).
const NotifyWriteChunkSize = 32 * 1024 // 32KB

// QueueSize bounds notifications waiting for the socket; extra ones are dropped.
const QueueSize = 64

var (
	// UnixSocketTimeout is the timeout for Unix socket operations
	UnixSocketTimeout = 3 * time.Second
)

var _ presentation.Presenter = (*SocketPresenter)(nil)

// SendNotification sends one length-prefixed JSON notification and reads the reply.
func SendNotification(notification *types.Notification, socketPath string) error {
	if _, err := os.Stat(socketPath); os.IsNotExist(err) {
		return fmt.Errorf("unix socket not found: %s", socketPath)
	}

	payload := []byte("{}")
	if notification != nil {
		var err error
		payload, err = sonic.Marshal(notification)
		if err != nil {
			return fmt.Errorf("failed to serialize notification data: %w", err)
		}
	}
	if len(payload) > NotifyWriteChunkSize {
		return fmt.Errorf("notification payload too large: %d bytes (max %d)", len(payload), NotifyWriteChunkSize)
	}

	conn, err := net.DialTimeout("unix", socketPath, UnixSocketTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to Unix socket %s: %w", socketPath, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close Unix socket connection: %v", err)
		}
	}()

	if err := conn.SetDeadline(time.Now().Add(UnixSocketTimeout)); err != nil {
		tool.DefaultLogger.Errorf("Failed to set deadline: %v", err)
	}

	// 4-byte little-endian length prefix, then the payload
	lengthBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lengthBuf, uint32(len(payload)))
	if _, err := conn.Write(lengthBuf); err != nil {
		return fmt.Errorf("failed to write length to Unix socket: %w", err)
	}
	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("failed to write payload to Unix socket: %w", err)
	}

	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read response from Unix socket: %w", err)
	}
	if n > 0 {
		var response map[string]any
		if err := sonic.Unmarshal(buf[:n], &response); err != nil {
			tool.DefaultLogger.Debugf("Unix socket response (raw): %s", string(buf[:n]))
		} else if errMsg, ok := response["error"].(string); ok && errMsg != "" {
			return fmt.Errorf("server returned error: %s", errMsg)
		}
	}
	return nil
}

// SocketPresenter queues presentation effects and delivers them in order on
// a background goroutine, so Update never waits on the socket.
type SocketPresenter struct {
	path  string
	queue chan *types.Notification
	done  chan struct{}
}

func NewSocketPresenter(path string) *SocketPresenter {
	p := &SocketPresenter{
		path:  path,
		queue: make(chan *types.Notification, QueueSize),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *SocketPresenter) run() {
	defer close(p.done)
	for n := range p.queue {
		if err := SendNotification(n, p.path); err != nil {
			tool.DefaultLogger.Debugf("[UnixSocket] %s not delivered: %v", n.Type, err)
			continue
		}
		tool.DefaultLogger.Debugf("[UnixSocket] Notification sent: %s", n.Type)
	}
}

func (p *SocketPresenter) enqueue(kind, value string) {
	n := &types.Notification{Type: kind, ID: tool.GenerateRandomUUID(), Data: map[string]any{"value": value}}
	select {
	case p.queue <- n:
	default:
		tool.DefaultLogger.Warnf("[UnixSocket] queue full, dropping %s", kind)
	}
}

func (p *SocketPresenter) SetTheme(theme string)       { p.enqueue(types.NotifyTypeTheme, theme) }
func (p *SocketPresenter) SetFontFamily(family string) { p.enqueue(types.NotifyTypeFontFamily, family) }
func (p *SocketPresenter) SetFontSize(size string)     { p.enqueue(types.NotifyTypeFontSize, size) }

// Close drains queued notifications and stops the worker. No effects may be
// sent after Close.
func (p *SocketPresenter) Close() {
	close(p.queue)
	<-p.done
}
