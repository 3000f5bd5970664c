package httpserver

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe(t *testing.T) {
	t.Run("returns nil after cancellation", func(t *testing.T) {
		srv := New("127.0.0.1:0", http.NotFoundHandler())
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- Serve(ctx, srv, time.Second) }()
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("reports listen errors", func(t *testing.T) {
		srv := New("256.0.0.1:bad", http.NotFoundHandler())
		err := Serve(context.Background(), srv, time.Second)
		require.Error(t, err)
	})
}
