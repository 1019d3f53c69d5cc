// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pprof

import (
	"context"
	"runtime"
	"time"

	"github.com/ChainSafe/chainext/internal/httpserver"
)

const stopTimeout = 10 * time.Second

// Service runs the profiling server with the block and mutex profiles
// enabled.
type Service struct {
	*httpserver.Service
	settings          Settings
	previousMutexRate int
}

// NewService returns a profiling service with the settings given.
func NewService(settings Settings, logger httpserver.Logger) *Service {
	settings.setDefaults()
	server := NewServer(settings.ListeningAddress, logger)
	return &Service{
		Service:  httpserver.NewService(server, stopTimeout),
		settings: settings,
	}
}

// Start sets the profile rates and starts the server.
func (s *Service) Start(ctx context.Context) (err error) {
	runtime.SetBlockProfileRate(s.settings.BlockProfileRate)
	s.previousMutexRate = runtime.SetMutexProfileFraction(s.settings.MutexProfileRate)

	err = s.Service.Start(ctx)
	if err != nil {
		s.resetRates()
		return err
	}
	return nil
}

// Stop stops the server and restores the profile rates.
func (s *Service) Stop() (err error) {
	err = s.Service.Stop()
	s.resetRates()
	return err
}

func (s *Service) resetRates() {
	runtime.SetBlockProfileRate(0)
	runtime.SetMutexProfileFraction(s.previousMutexRate)
}
