package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/hub"
	"gamersdb/backend/internal/router"
	"gamersdb/backend/internal/storage/memory"
	"gamersdb/backend/internal/testutil"
)

func TestShutdownEndsEventStreams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := testutil.NopLogger()
	events := hub.New(logger)
	engine := router.Setup(router.Config{
		Catalog: catalog.NewService(memory.New(), events, logger),
		Hub:     events,
		Logger:  logger,
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := newServer(ctx, ln.Addr().String(), engine)
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/events")
		if err == nil {
			_ = resp.Body.Close()
		}
	}()
	require.Eventually(t, func() bool { return events.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
	defer stop()
	require.NoError(t, srv.Shutdown(shutdownCtx))

	assert.Equal(t, 0, events.Subscribers())
	assert.True(t, errors.Is(<-served, http.ErrServerClosed))
}
