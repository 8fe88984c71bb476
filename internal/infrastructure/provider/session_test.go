package provider

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn feeds ReadMessage from a channel; closing the channel simulates
// the peer dropping the connection.
type fakeConn struct {
	messages chan []byte
	closed   atomic.Bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{messages: make(chan []byte, 16)}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	raw, ok := <-c.messages
	if !ok {
		return 0, nil, errors.New("connection closed")
	}
	return 1, raw, nil
}

func (c *fakeConn) WriteJSON(any) error { return nil }

func (c *fakeConn) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		close(c.messages)
	}
	return nil
}

func TestSessionReconnectsOnceAfterClose(t *testing.T) {
	var dials atomic.Int32
	first := newFakeConn()
	second := newFakeConn()

	dial := func(context.Context, string, http.Header) (wsConn, error) {
		switch dials.Add(1) {
		case 1:
			return first, nil
		default:
			return second, nil
		}
	}

	s := newSession(sessionConfig{
		Name:      "test",
		URL:       "wss://example.invalid/stream",
		Backoff:   FixedBackoff(20 * time.Millisecond),
		Dial:      dial,
		OnMessage: func([]byte) {},
		Logger:    testLogger().WithField("provider", "test"),
	})
	s.Start(context.Background())
	defer s.Close()

	// Drop the first connection and wait for the scheduled reconnect.
	first.Close()
	require.Eventually(t, func() bool {
		return dials.Load() == 2
	}, time.Second, 5*time.Millisecond)

	// The second connection stays up, so no further dials happen.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(2), dials.Load())
	assert.True(t, s.Connected())
}

func TestSessionDeliversMessages(t *testing.T) {
	conn := newFakeConn()
	received := make(chan []byte, 1)

	s := newSession(sessionConfig{
		Name:    "test",
		Backoff: FixedBackoff(time.Minute),
		Dial: func(context.Context, string, http.Header) (wsConn, error) {
			return conn, nil
		},
		OnMessage: func(raw []byte) { received <- raw },
		Logger:    testLogger().WithField("provider", "test"),
	})
	s.Start(context.Background())
	defer s.Close()

	conn.messages <- []byte(`{"event":"tickers"}`)
	select {
	case raw := <-received:
		assert.JSONEq(t, `{"event":"tickers"}`, string(raw))
	case <-time.After(time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestSessionSendJSONWhenDown(t *testing.T) {
	s := newSession(sessionConfig{
		Name:    "test",
		Backoff: FixedBackoff(time.Minute),
		Logger:  testLogger().WithField("provider", "test"),
	})
	assert.ErrorIs(t, s.SendJSON(map[string]string{"op": "subscribe"}), ErrSessionDown)
}

// slowWriteConn flags overlapping WriteJSON calls, which the underlying
// websocket connection forbids.
type slowWriteConn struct {
	*fakeConn
	inFlight   atomic.Int32
	overlapped atomic.Bool
}

func (c *slowWriteConn) WriteJSON(any) error {
	if c.inFlight.Add(1) > 1 {
		c.overlapped.Store(true)
	}
	time.Sleep(time.Millisecond)
	c.inFlight.Add(-1)
	return nil
}

func TestSessionSerializesConcurrentWrites(t *testing.T) {
	conn := &slowWriteConn{fakeConn: newFakeConn()}

	s := newSession(sessionConfig{
		Name:    "test",
		Backoff: FixedBackoff(time.Minute),
		Dial: func(context.Context, string, http.Header) (wsConn, error) {
			return conn, nil
		},
		Logger: testLogger().WithField("provider", "test"),
	})
	s.Start(context.Background())
	defer s.Close()

	require.Eventually(t, func() bool {
		return s.Connected()
	}, time.Second, 5*time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				_ = s.SendJSON(map[string]string{"op": "subscribe"})
			}
		}()
	}
	wg.Wait()

	assert.False(t, conn.overlapped.Load(), "writes reached the connection concurrently")
}

func TestSessionConnectHookFailureRetries(t *testing.T) {
	var dials atomic.Int32
	steady := newFakeConn()

	s := newSession(sessionConfig{
		Name:    "test",
		Backoff: FixedBackoff(10 * time.Millisecond),
		Dial: func(context.Context, string, http.Header) (wsConn, error) {
			if dials.Add(1) == 1 {
				return newFakeConn(), nil
			}
			return steady, nil
		},
		OnConnect: func(s *session) error {
			if dials.Load() == 1 {
				return errors.New("auth rejected")
			}
			return nil
		},
		Logger: testLogger().WithField("provider", "test"),
	})
	s.Start(context.Background())
	defer s.Close()

	require.Eventually(t, func() bool {
		return s.Connected()
	}, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, dials.Load(), int32(2))
}
