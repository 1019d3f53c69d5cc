// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package httpserver implements an HTTP server running until its
// context is canceled.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
)

// Server is an HTTP server implementation, which uses
// the HTTP handler provided.
type Server struct {
	name       string
	address    string
	addressSet chan struct{}
	handler    http.Handler
	logger     Logger
	optional   optionalSettings
	mutex      sync.RWMutex
}

// New creates a new HTTP server with a name, listening on
// the address specified and using the HTTP handler provided.
func New(name, address string, handler http.Handler,
	logger Logger, options ...Option) *Server {
	return &Server{
		name:       name,
		address:    address,
		addressSet: make(chan struct{}),
		handler:    handler,
		logger:     logger,
		optional:   newOptionalSettings(options),
	}
}

// GetAddress obtains the address the HTTP server is listening on.
// It blocks until the server is listening.
func (s *Server) GetAddress() (address string) {
	<-s.addressSet
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.address
}

// Run runs the HTTP server until ctx is canceled.
// The ready channel is closed once the server is listening.
// The done channel gets the error of the server, nil on
// a graceful shutdown, and is not closed.
func (s *Server) Run(ctx context.Context, ready chan<- struct{}, done chan<- error) {
	settings := s.optional
	settings.setDefaults()
	server := http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadTimeout:       settings.readTimeout,
		ReadHeaderTimeout: settings.readHeaderTimeout,
	}

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		close(s.addressSet)
		done <- err
		return
	}

	s.mutex.Lock()
	s.address = listener.Addr().String()
	s.mutex.Unlock()
	close(s.addressSet)

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		s.logger.Warn(s.name + " http server shutting down: " + ctx.Err().Error())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			s.logger.Error(s.name + " http server failed shutting down within " +
				settings.shutdownTimeout.String())
		}
	}()

	close(ready)
	s.logger.Info(s.name + " http server listening on " + listener.Addr().String())
	err = server.Serve(listener)

	if errors.Is(err, http.ErrServerClosed) {
		<-shutdownDone
		err = nil
	}
	done <- err
}
