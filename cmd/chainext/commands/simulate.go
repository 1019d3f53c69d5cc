// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ChainSafe/chainext/config"
	"github.com/ChainSafe/chainext/internal/database"
	"github.com/ChainSafe/chainext/internal/database/badger"
	"github.com/ChainSafe/chainext/internal/database/memory"
	"github.com/ChainSafe/chainext/internal/database/pebble"
	"github.com/ChainSafe/chainext/internal/devnet"
	"github.com/ChainSafe/chainext/internal/httpserver"
	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/internal/metrics"
	"github.com/ChainSafe/chainext/internal/pallets/contracts"
	"github.com/ChainSafe/chainext/internal/pallets/fungibles"
	"github.com/ChainSafe/chainext/internal/pallets/system"
	"github.com/ChainSafe/chainext/internal/pprof"
	"github.com/ChainSafe/chainext/lib/extension"
	"github.com/ChainSafe/chainext/lib/frame"
	"github.com/ChainSafe/chainext/lib/frame/storage"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// DefaultContract is the account of the simulated contract.
var DefaultContract = primitives.AccountIDFromUint64(100)

var errInvalidSupply = errors.New("invalid bootstrap supply")

type simulation struct {
	id              extension.Identifier
	input           []byte
	contract        primitives.AccountID
	skipOutput      bool
	bootstrapToken  uint32
	bootstrapSupply string
	repeat          uint
	hold            time.Duration
}

func newSimulateCommand(a *app) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a chain extension call made by a contract against the devnet runtime",
		Long: `Run a chain extension call made by a contract against the devnet runtime
and print its status code, output, gas consumed and the events deposited.
State changes are committed to the pebble and badger state backends.`,
		Example: `  chainext simulate --bootstrap-supply 1000 \
    --id 0x03960000 \
    --input 0x0100000002000000000000000000000000000000000000000000000000000000000000000a000000000000000000000000000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseSimulation(cmd)
			if err != nil {
				return err
			}
			return runSimulation(cmd.Context(), cmd.OutOrStdout(), a.config, s)
		},
	}

	cmd.Flags().String("id", "", "Function identifier, in decimal or 0x prefixed hexadecimal")
	cmd.Flags().String("input", "", "Hex encoded contract input")
	cmd.Flags().String("contract", DefaultContract.String(), "Hex encoded account of the calling contract")
	cmd.Flags().Bool("skip-output", false, "Call without an output buffer")
	cmd.Flags().Uint32("bootstrap-token", 1,
		"Token created for the contract before the call when --bootstrap-supply is set")
	cmd.Flags().String("bootstrap-supply", "",
		"Balance minted to the contract before the call, if the bootstrap token does not exist yet")
	cmd.Flags().Uint("repeat", 1, "Number of times the call is made")
	cmd.Flags().Duration("hold", 0,
		"Duration the metrics and pprof servers keep serving after the calls")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		return nil, err
	}

	defaults := config.Default()
	if err := addUint32FlagBindViper(cmd, a.viper,
		"output-capacity",
		defaults.Extension.OutputBufferCapacity,
		"Size of the contract output buffer",
		"extension.output-buffer-capacity"); err != nil {
		return nil, fmt.Errorf("failed to add --output-capacity flag: %s", err)
	}
	if err := addUint64FlagBindViper(cmd, a.viper,
		"gas-ref-time",
		defaults.Extension.GasLimitRefTime,
		"Reference time gas limit of the call",
		"extension.gas-limit-ref-time"); err != nil {
		return nil, fmt.Errorf("failed to add --gas-ref-time flag: %s", err)
	}
	if err := addUint64FlagBindViper(cmd, a.viper,
		"gas-proof-size",
		defaults.Extension.GasLimitProofSize,
		"Proof size gas limit of the call",
		"extension.gas-limit-proof-size"); err != nil {
		return nil, fmt.Errorf("failed to add --gas-proof-size flag: %s", err)
	}

	return cmd, nil
}

func parseSimulation(cmd *cobra.Command) (s simulation, err error) {
	flags := cmd.Flags()

	rawID, err := flags.GetString("id")
	if err != nil {
		return s, fmt.Errorf("failed to get --id: %s", err)
	}
	id, err := parseUint32(rawID)
	if err != nil {
		return s, fmt.Errorf("invalid --id: %w", err)
	}
	s.id = extension.Identifier(id)

	rawInput, err := flags.GetString("input")
	if err != nil {
		return s, fmt.Errorf("failed to get --input: %s", err)
	}
	s.input, err = parseHex(rawInput)
	if err != nil {
		return s, fmt.Errorf("invalid --input: %w", err)
	}

	rawContract, err := flags.GetString("contract")
	if err != nil {
		return s, fmt.Errorf("failed to get --contract: %s", err)
	}
	s.contract, err = primitives.ParseAccountID(rawContract)
	if err != nil {
		return s, fmt.Errorf("invalid --contract: %w", err)
	}

	if s.skipOutput, err = flags.GetBool("skip-output"); err != nil {
		return s, fmt.Errorf("failed to get --skip-output: %s", err)
	}
	if s.bootstrapToken, err = flags.GetUint32("bootstrap-token"); err != nil {
		return s, fmt.Errorf("failed to get --bootstrap-token: %s", err)
	}
	if s.bootstrapSupply, err = flags.GetString("bootstrap-supply"); err != nil {
		return s, fmt.Errorf("failed to get --bootstrap-supply: %s", err)
	}
	if s.repeat, err = flags.GetUint("repeat"); err != nil {
		return s, fmt.Errorf("failed to get --repeat: %s", err)
	}
	if s.repeat == 0 {
		return s, fmt.Errorf("--repeat must be at least 1")
	}
	if s.hold, err = flags.GetDuration("hold"); err != nil {
		return s, fmt.Errorf("failed to get --hold: %s", err)
	}
	return s, nil
}

// openDatabase opens the state database of the configured backend.
func openDatabase(cfg config.StateConfig) (database.Database, error) {
	switch cfg.Backend {
	case config.MemoryBackend:
		return memory.New(), nil
	case config.PebbleBackend:
		return pebble.New(cfg.Path, false)
	case config.BadgerBackend:
		return badger.New(badger.Settings{Path: cfg.Path})
	default:
		return nil, fmt.Errorf("state backend %q not supported", cfg.Backend)
	}
}

func runSimulation(ctx context.Context, w io.Writer, cfg *config.Config, s simulation) (err error) {
	db, err := openDatabase(cfg.State)
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	defer func() {
		closeErr := db.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("closing state database: %w", closeErr)
		}
	}()

	runtimeLogger := log.NewFromGlobal(
		log.AddContext("pkg", "devnet"),
		log.SetLevel(cfg.RuntimeLogLevel()))
	options := []devnet.Option{
		devnet.WithSchedule(cfg.ExtensionSchedule()),
		devnet.WithLogger(runtimeLogger),
		devnet.WithLogTarget(cfg.Extension.LogTarget),
	}

	servers, err := startServers(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		stopErr := servers.stop(s.hold)
		if err == nil && stopErr != nil {
			err = stopErr
		}
	}()
	if servers.observer != nil {
		options = append(options, devnet.WithObserver(servers.observer))
	}

	runtime := devnet.New(storage.NewState(db), options...)

	if s.bootstrapSupply != "" {
		err = bootstrap(runtime, s.contract, s.bootstrapToken, s.bootstrapSupply)
		if err != nil {
			return err
		}
	}

	request := contracts.CallRequest{
		ID:             uint32(s.id),
		Contract:       s.contract,
		Input:          s.input,
		OutputCapacity: cfg.Extension.OutputBufferCapacity,
		SkipOutput:     s.skipOutput,
		GasLimit:       cfg.GasLimit(),
	}
	start := time.Now()
	var result contracts.CallResult
	for i := uint(0); i < s.repeat; i++ {
		pprof.Do(ctx, s.id, func(context.Context) {
			result = runtime.Call(request)
		})
	}
	elapsed := time.Since(start)

	events, err := runtime.System.Events()
	if err != nil {
		return fmt.Errorf("reading events: %w", err)
	}
	printResult(w, s.id, result, events)
	if s.repeat > 1 {
		printField(w, "calls", "%d in %s", s.repeat, elapsed)
	}

	if cfg.State.Backend != config.MemoryBackend {
		err = runtime.Commit(db.NewWriteBatch())
		if err != nil {
			return fmt.Errorf("committing state: %w", err)
		}
		logger.Infof("state committed to %s", db.Path())
	}
	return nil
}

// servers are the optional metrics and pprof servers running during a
// simulation.
type servers struct {
	observer *metrics.ExtensionObserver
	metrics  *httpserver.Service
	pprof    *pprof.Service
}

func startServers(ctx context.Context, cfg *config.Config) (s servers, err error) {
	if cfg.Pprof.Enabled {
		s.pprof = pprof.NewService(pprof.Settings{
			ListeningAddress: cfg.Pprof.ListeningAddress,
			BlockProfileRate: cfg.Pprof.BlockProfileRate,
			MutexProfileRate: cfg.Pprof.MutexProfileRate,
		}, logger)
		err = s.pprof.Start(ctx)
		if err != nil {
			return s, fmt.Errorf("starting pprof server: %w", err)
		}
	}

	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		s.observer = metrics.NewExtensionObserver(registry)
		s.metrics = metrics.NewServer(cfg.Metrics.Address, registry)
		err = s.metrics.Start(ctx)
		if err != nil {
			s.metrics = nil
			stopErr := s.stop(0)
			if stopErr != nil {
				logger.Warnf("stopping servers: %s", stopErr)
			}
			return s, fmt.Errorf("starting metrics server: %w", err)
		}
	}
	return s, nil
}

// stop stops the running servers, once the hold duration elapsed.
func (s servers) stop(hold time.Duration) (err error) {
	if s.metrics == nil && s.pprof == nil {
		return nil
	}

	if hold > 0 {
		logger.Infof("holding servers for %s", hold)
		time.Sleep(hold)
	}

	if s.metrics != nil {
		err = s.metrics.Stop()
		if err != nil {
			err = fmt.Errorf("stopping metrics server: %w", err)
		}
	}
	if s.pprof != nil {
		pprofErr := s.pprof.Stop()
		if err == nil && pprofErr != nil {
			err = fmt.Errorf("stopping pprof server: %w", pprofErr)
		}
	}
	return err
}

// bootstrap creates the token administered by the contract and mints
// the supply to it, unless the token exists.
func bootstrap(runtime *devnet.Runtime, contract primitives.AccountID, token uint32, rawSupply string) error {
	supply, ok := fungibles.ParseBalance(rawSupply)
	if !ok {
		return fmt.Errorf("%w: %s", errInvalidSupply, rawSupply)
	}

	exists, err := runtime.Fungibles.Exists(token)
	if err != nil {
		return fmt.Errorf("checking token %d: %w", token, err)
	}
	if exists {
		logger.Infof("token %d exists, skipping bootstrap", token)
		return nil
	}

	calls := []devnet.RuntimeCall{
		devnet.FungiblesCall(fungibles.Create(token, contract, fungibles.NewBalance(1))),
		devnet.FungiblesCall(fungibles.Mint(token, contract, supply)),
	}
	for _, call := range calls {
		_, err = runtime.Dispatch(call, frame.Signed(contract))
		if err != nil {
			return fmt.Errorf("bootstrapping token %d: %s: %w", token, call, err)
		}
	}
	runtime.System.ResetEvents()
	logger.Infof("token %d created with supply %s for %s", token, supply, contract)
	return nil
}

func printResult(w io.Writer, id extension.Identifier, result contracts.CallResult, events []system.EventRecord) {
	printField(w, "identifier", "%s", id)
	switch {
	case result.Err != nil:
		printField(w, "outcome", "%s", trapColour.Sprintf("trapped: %s", result.Err))
	case result.Status == 0:
		printField(w, "outcome", "%s", successColour.Sprint("success"))
	default:
		printField(w, "outcome", "%s", statusColour.Sprintf("status 0x%08x", uint32(result.Status)))
		if description, ok := describeStatus(uint32(result.Status)); ok {
			printField(w, "error", "%s", description)
		}
	}
	if len(result.Output) > 0 {
		printField(w, "output", "0x%x", result.Output)
	}
	printField(w, "gas", "%s", result.GasConsumed)
	printField(w, "events", "%d", len(events))
	for _, event := range events {
		fmt.Fprintf(w, "  %s\n", event)
	}
}
