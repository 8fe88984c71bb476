package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const probeTimeout = 10 * time.Second

// probeEndpoint opens and immediately closes one connection to verify the
// endpoint is reachable. The dial is bounded; a hung endpoint reports as a
// failure, never as a stuck call.
func probeEndpoint(ctx context.Context, endpoint string, header http.Header) error {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	dialer := websocket.Dialer{HandshakeTimeout: probeTimeout}
	conn, _, err := dialer.DialContext(probeCtx, endpoint, header)
	if err != nil {
		return fmt.Errorf("probe %s: %w", endpoint, err)
	}
	return conn.Close()
}
