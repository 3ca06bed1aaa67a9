package telemetry

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServer_ServesAndStops(t *testing.T) {
	m := NewMetrics("contentdesk")
	m.ObserveStatement("select", time.Millisecond, nil)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewMetricsServer("", m, logging.Nop{}).Serve(ctx, lis) }()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + lis.Addr().String() + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil || resp.StatusCode != http.StatusOK {
			return false
		}
		body = string(b)
		return true
	}, 2*time.Second, 20*time.Millisecond)

	assert.Contains(t, body, `contentdesk_db_statements_total{kind="select"} 1`)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}

func TestMetricsServer_RunBadAddress(t *testing.T) {
	err := NewMetricsServer("bad::addr", NewMetrics("contentdesk"), logging.Nop{}).Run(context.Background())
	require.Error(t, err)
}
