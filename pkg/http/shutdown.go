package http

import (
	"os"
	"os/signal"
	"syscall"
)

// GracefulShutdown blocks until the process receives SIGINT or SIGTERM and returns it.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	return <-quit
}
