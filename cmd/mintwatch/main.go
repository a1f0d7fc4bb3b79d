// Package main runs the mint competition monitor against a bitcoind node.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/mintwatch-backend/internal/clock"
	"github.com/goodnatureofminers/mintwatch-backend/internal/metrics"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/archive/clickhouse"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/bitcoin"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/classifier"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/service/monitor"
	"github.com/goodnatureofminers/mintwatch-backend/internal/transport"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type config struct {
	Network     model.Network `long:"network" env:"MINTWATCH_NETWORK" description:"network name (mainnet, testnet, signet, regtest)" default:"mainnet"`
	RPCURL      string        `long:"rpc-url" env:"MINTWATCH_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser     string        `long:"rpc-user" env:"MINTWATCH_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword string        `long:"rpc-password" env:"MINTWATCH_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCTimeout  time.Duration `long:"rpc-timeout" env:"MINTWATCH_RPC_TIMEOUT" description:"timeout of a single RPC call" default:"15s"`

	MintSignature     string        `long:"mint-signature" env:"MINTWATCH_MINT_SIGNATURE" description:"hex encoded data-carrier signature of a mint" default:"6d696e74"`
	MinMempoolFeeRate float64       `long:"min-mempool-fee-rate" env:"MINTWATCH_MIN_MEMPOOL_FEE_RATE" description:"mempool prefilter floor in sat/vB" default:"1"`
	WinnerMinFeeRate  float64       `long:"winner-min-fee-rate" env:"MINTWATCH_WINNER_MIN_FEE_RATE" description:"a block winner must pay strictly more than this rate in sat/vB" default:"1"`
	BatchSize         int           `long:"batch-size" env:"MINTWATCH_BATCH_SIZE" description:"transactions fetched per mempool batch" default:"50"`
	BatchConcurrency  int           `long:"batch-concurrency" env:"MINTWATCH_BATCH_CONCURRENCY" description:"mempool batches fetched in parallel" default:"4"`
	BatchDelay        time.Duration `long:"batch-delay" env:"MINTWATCH_BATCH_DELAY" description:"minimum spacing between mempool batches" default:"100ms"`
	TopK              int           `long:"top-k" env:"MINTWATCH_TOP_K" description:"pending candidates included in mempool updates" default:"10"`
	PrevoutCacheSize  int           `long:"prevout-cache-size" env:"MINTWATCH_PREVOUT_CACHE_SIZE" description:"previous outputs kept in memory" default:"50000"`
	FetchConcurrency  int           `long:"fetch-concurrency" env:"MINTWATCH_FETCH_CONCURRENCY" description:"transaction requests in flight per batch" default:"8"`

	RetryMax         int           `long:"retry-max" env:"MINTWATCH_RETRY_MAX" description:"attempts per RPC operation" default:"3"`
	RetryBackoffBase time.Duration `long:"retry-backoff-base" env:"MINTWATCH_RETRY_BACKOFF_BASE" description:"initial retry delay" default:"500ms"`
	RetryBackoffMax  time.Duration `long:"retry-backoff-max" env:"MINTWATCH_RETRY_BACKOFF_MAX" description:"maximum retry delay" default:"10s"`

	MempoolEntryTTL     time.Duration       `long:"mempool-entry-ttl" env:"MINTWATCH_MEMPOOL_ENTRY_TTL" description:"age after which a classified mempool tx is re-examined" default:"30m"`
	HistoryCapacity     int                 `long:"history-capacity" env:"MINTWATCH_HISTORY_CAPACITY" description:"block winners kept in history" default:"100"`
	BlockPollInterval   time.Duration       `long:"block-poll-interval" env:"MINTWATCH_BLOCK_POLL_INTERVAL" description:"block scan interval" default:"30s"`
	MempoolPollInterval time.Duration       `long:"mempool-poll-interval" env:"MINTWATCH_MEMPOOL_POLL_INTERVAL" description:"mempool scan interval" default:"10s"`
	StartHeight         monitor.StartHeight `long:"start-height" env:"MINTWATCH_START_HEIGHT" description:"first block to scan, a height or latest" default:"latest"`

	HTTPAddr      string `long:"http-addr" env:"MINTWATCH_HTTP_ADDR" description:"address of the HTTP API" default:":8000"`
	MetricsAddr   string `long:"metrics-addr" env:"MINTWATCH_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	ZMQAddr       string `long:"zmq-addr" env:"MINTWATCH_ZMQ_ADDR" description:"bitcoind zmqpubhashblock endpoint, needs a build with -tags zmq"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"MINTWATCH_CLICKHOUSE_DSN" description:"ClickHouse DSN, enables the archive"`
	LogProduction bool   `long:"log-production" env:"MINTWATCH_LOG_PRODUCTION" description:"use the production logger"`
}

func (c config) monitorConfig() monitor.Config {
	mc := monitor.DefaultConfig()
	mc.Network = c.Network
	mc.MinMempoolFeeRate = c.MinMempoolFeeRate
	mc.WinnerMinFeeRate = c.WinnerMinFeeRate
	mc.BatchSize = c.BatchSize
	mc.BatchConcurrency = c.BatchConcurrency
	mc.BatchDelay = c.BatchDelay
	mc.TopK = c.TopK
	mc.RetryMax = c.RetryMax
	mc.RetryBackoffBase = c.RetryBackoffBase
	mc.RetryBackoffMax = c.RetryBackoffMax
	mc.RPCTimeout = c.RPCTimeout
	mc.MempoolEntryTTL = c.MempoolEntryTTL
	mc.HistoryCapacity = c.HistoryCapacity
	mc.BlockPollInterval = c.BlockPollInterval
	mc.MempoolPollInterval = c.MempoolPollInterval
	mc.StartHeight = c.StartHeight
	return mc
}

func main() {
	cfg := config{}
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "failed to parse flags: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger(cfg.LogProduction)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("mintwatch failed", zap.Error(err))
	}
}

func newLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	logger = logger.With(zap.String("network", string(cfg.Network)))

	matcher, err := classifier.ParseSignatureHex(cfg.MintSignature)
	if err != nil {
		return err
	}

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()

	ledger, err := bitcoin.NewLedgerClient(bitcoin.LedgerConfig{
		Network:          cfg.Network,
		PrevoutCacheSize: cfg.PrevoutCacheSize,
		FetchConcurrency: cfg.FetchConcurrency,
	}, bitcoin.NewRPCClient(rpcClient, metrics.NewRPCClient(cfg.Network)), logger)
	if err != nil {
		return fmt.Errorf("init ledger client: %w", err)
	}

	svc, err := monitor.New(cfg.monitorConfig(), ledger, matcher, monitor.NewMetrics(cfg.Network), clock.System, logger)
	if err != nil {
		return fmt.Errorf("init monitor: %w", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("failed to stop monitor", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Network, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init archive repository: %w", err)
		}
		defer func() {
			_ = repo.Close()
		}()
		archiver := clickhouse.NewArchiver(repo, clickhouse.DefaultBatcherConfig, logger)
		sub := svc.SubscribeLossless(clickhouse.ArchivedKinds...)
		g.Go(func() error {
			return archiver.Run(gctx, sub)
		})
	}

	blockSignal, err := startBlockSignal(gctx, cfg.ZMQAddr, logger)
	if err != nil {
		cancel()
		_ = g.Wait()
		return fmt.Errorf("init block signal: %w", err)
	}
	if blockSignal != nil {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-blockSignal:
					svc.TriggerBlockScan()
				}
			}
		})
	}

	if err := svc.Start(gctx); err != nil {
		cancel()
		_ = g.Wait()
		return err
	}

	mux := http.NewServeMux()
	transport.NewAPIHandler(svc, metrics.NewHTTPAPI(), logger).Register(mux)
	g.Go(func() error {
		return serveHTTP(gctx, "api", cfg.HTTPAddr, cors.Default().Handler(mux), logger)
	})

	if cfg.MetricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		g.Go(func() error {
			return serveHTTP(gctx, "metrics", cfg.MetricsAddr, metricsMux, logger)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		// Closing the broker ends open event streams and lets the archiver flush.
		return svc.Close()
	})

	return g.Wait()
}

func serveHTTP(ctx context.Context, name, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down http server", zap.String("server", name))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", zap.String("server", name), zap.Error(err))
		}
	}()

	logger.Info("starting http server", zap.String("server", name), zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
