package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

type Config struct {
	Port    int
	Timeout time.Duration
}

// New. http.Server bound to ctx, write timeout is the request timeout plus some slack for the response.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      config.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
