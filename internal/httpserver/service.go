// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Runner runs a server until its context is canceled.
type Runner interface {
	Run(ctx context.Context, ready chan<- struct{}, done chan<- error)
	GetAddress() (address string)
}

var (
	// ErrServerDoneBeforeReady is returned by Start if the server exits
	// before listening.
	ErrServerDoneBeforeReady = errors.New("server terminated before being ready")
	// ErrStopTimeout is returned by Stop if the server does not exit in
	// time.
	ErrStopTimeout = errors.New("server did not stop in time")
)

// Service runs a server in the background, from Start until Stop is
// called or the context given to Start is canceled.
type Service struct {
	runner      Runner
	stopTimeout time.Duration
	cancel      context.CancelFunc
	done        chan error
}

// NewService returns a service for the runner given. Stop gives up
// waiting for the runner after stopTimeout.
func NewService(runner Runner, stopTimeout time.Duration) *Service {
	return &Service{
		runner:      runner,
		stopTimeout: stopTimeout,
	}
}

// Start runs the server and returns once it listens.
func (s *Service) Start(ctx context.Context) (err error) {
	ctx, s.cancel = context.WithCancel(ctx)
	ready := make(chan struct{})
	s.done = make(chan error, 1)

	go s.runner.Run(ctx, ready, s.done)

	select {
	case <-ready:
		return nil
	case err = <-s.done:
		s.cancel()
		if err != nil {
			return err
		}
		return ErrServerDoneBeforeReady
	}
}

// Address returns the address the server listens on.
func (s *Service) Address() string {
	return s.runner.GetAddress()
}

// Stop stops the server started by Start.
func (s *Service) Stop() (err error) {
	s.cancel()

	timer := time.NewTimer(s.stopTimeout)
	defer timer.Stop()
	select {
	case err = <-s.done:
		return err
	case <-timer.C:
		return fmt.Errorf("%w: waited %s", ErrStopTimeout, s.stopTimeout)
	}
}
