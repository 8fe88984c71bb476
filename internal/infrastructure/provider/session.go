package provider

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const dialTimeout = 10 * time.Second

// wsConn is the subset of *websocket.Conn the session uses; tests inject
// fakes through the dial function.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v any) error
	Close() error
}

// dialFunc opens one websocket connection to the provider endpoint.
type dialFunc func(ctx context.Context, url string, header http.Header) (wsConn, error)

func gorillaDial(ctx context.Context, url string, header http.Header) (wsConn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// session owns one streaming connection: dial, receive loop, reconnect.
// A closed connection schedules exactly one reconnect per closure; message
// handling errors never terminate the loop.
type session struct {
	name      string
	url       string
	header    http.Header
	backoff   Backoff
	dial      dialFunc
	onConnect func(s *session) error
	onMessage func(raw []byte)
	logger    *logrus.Entry

	mu        sync.Mutex
	conn      wsConn
	connected bool
	started   bool
	cancel    context.CancelFunc
	done      chan struct{}

	// writeMu serializes WriteJSON calls; gorilla/websocket allows at most
	// one concurrent writer per connection.
	writeMu sync.Mutex
}

type sessionConfig struct {
	Name      string
	URL       string
	Header    http.Header
	Backoff   Backoff
	Dial      dialFunc
	OnConnect func(s *session) error
	OnMessage func(raw []byte)
	Logger    *logrus.Entry
}

func newSession(cfg sessionConfig) *session {
	dial := cfg.Dial
	if dial == nil {
		dial = gorillaDial
	}
	return &session{
		name:      cfg.Name,
		url:       cfg.URL,
		header:    cfg.Header,
		backoff:   cfg.Backoff,
		dial:      dial,
		onConnect: cfg.OnConnect,
		onMessage: cfg.OnMessage,
		logger:    cfg.Logger,
		done:      make(chan struct{}),
	}
}

// Start launches the connect/receive/reconnect loop. It returns immediately.
func (s *session) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(runCtx)
}

func (s *session) run(ctx context.Context) {
	defer close(s.done)
	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}
		attempt++
		if err := s.connectOnce(ctx); err != nil {
			s.logger.WithError(err).Warn("session connect failed")
		} else {
			// A completed receive loop means the connection dropped;
			// reset the attempt counter after a successful connect.
			attempt = 1
		}

		delay := s.backoff.Next(attempt)
		s.logger.WithField("delay", delay.String()).Info("scheduling reconnect")
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// connectOnce dials, runs the connect hook, and consumes messages until the
// connection drops. A nil return means the connection was established and
// later closed; an error means the dial or hook failed.
func (s *session) connectOnce(ctx context.Context) error {
	conn, err := s.dial(ctx, s.url, s.header)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.connected = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.connected = false
		s.conn = nil
		s.mu.Unlock()
		conn.Close()
	}()

	if s.onConnect != nil {
		if err := s.onConnect(s); err != nil {
			return err
		}
	}
	s.logger.Info("session connected")

	// Close the connection when the context is cancelled so ReadMessage
	// unblocks during shutdown.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.WithError(err).Warn("session closed")
			return nil
		}
		if s.onMessage != nil {
			s.onMessage(raw)
		}
	}
}

// SendJSON writes a control frame to the live connection. Writes are held
// under a dedicated lock so the connect-hook replay and router-driven
// subscribe calls never write concurrently.
func (s *session) SendJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return ErrSessionDown
	}
	return conn.WriteJSON(v)
}

// Connected reports whether the session currently holds a live connection.
func (s *session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Close tears the session down and waits for the run loop to exit.
func (s *session) Close() {
	s.mu.Lock()
	started := s.started
	if s.cancel != nil {
		s.cancel()
	}
	conn := s.conn
	s.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
	if started {
		<-s.done
	}
}
