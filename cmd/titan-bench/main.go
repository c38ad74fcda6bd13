// Command titan-bench runs the TITAN latency benchmark: a UDP jumbo
// receiver feeds ticks into an SPSC ring, an engine loop drives
// orderbook -> strategy -> risk and records tick-to-decision latency,
// and a background logger drains a fan-out copy of every tick to
// disk. See spec.md for the full contract.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/abdoElHodaky/titan-hft/internal/titanconfig"
	"github.com/abdoElHodaky/titan-hft/internal/titanengine"
	"github.com/abdoElHodaky/titan-hft/internal/titanhist"
	"github.com/abdoElHodaky/titan-hft/internal/titanlog"
	"github.com/abdoElHodaky/titan-hft/internal/titanlogsink"
	"github.com/abdoElHodaky/titan-hft/internal/titanmetrics"
	"github.com/abdoElHodaky/titan-hft/internal/titannet"
	"github.com/abdoElHodaky/titan-hft/internal/titanring"
	"github.com/abdoElHodaky/titan-hft/internal/titanrisk"
	"github.com/abdoElHodaky/titan-hft/internal/titanstrategy"
)

func main() {
	os.Exit(run())
}

func run() int {
	boot := titanlog.Global()

	cfg, err := titanconfig.Load("")
	if err != nil {
		boot.Error("load config", zap.Error(err))
		return 1
	}

	logger, err := titanconfig.NewLogger(cfg)
	if err != nil {
		boot.Error("init logger", zap.Error(err))
		return 1
	}
	titanlog.SetGlobal(logger)
	defer logger.Sync()

	logger.Info("=== TITAN BENCHMARK ENGINE ===")

	metrics := titanmetrics.New()
	go serveMetrics(cfg.Monitoring.PrometheusPort, logger)

	ingestRing, err := titanring.New(cfg.Ring.IngestCapacity)
	if err != nil {
		logger.Error("invalid ingest ring capacity", zap.Error(err))
		return 1
	}

	logRing, err := titanring.New(cfg.Ring.LogCapacity)
	if err != nil {
		logger.Error("invalid log ring capacity", zap.Error(err))
		return 1
	}
	logSink, err := titanlogsink.New(cfg.Logging.Path, cfg.Logging.BufferSize, logRing, metrics, logger)
	if err != nil {
		logger.Error("failed to start async logger", zap.Error(err))
		return 1
	}

	killSwitch := titanrisk.NewKillSwitch()
	riskManager := titanrisk.NewManager(cfg.Risk.MaxPosition, cfg.Risk.MaxDrawdown, killSwitch, logger)
	strategy := titanstrategy.NewMarketMaker()

	engine := titanengine.New(ingestRing, strategy, riskManager, metrics, logSink, logger, cfg.Benchmark.Samples)

	receiver, err := titannet.Bind(cfg.Network.BindAddr, cfg.Network.RecvBufferBytes, logger)
	if err != nil {
		logger.Error("bind failure", zap.Error(err))
		return 1
	}
	go receiver.ListenLoop(ingestRing)

	report := engine.Run()

	printReport(report)
	return 0
}

func serveMetrics(port int, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics server stopped", zap.Error(err))
	}
}

// printReport prints the benchmark report in the exact format
// mandated by spec.md §6.
func printReport(r titanhist.Report) {
	fmt.Println("=== TITAN BENCHMARK RESULTS ===")
	fmt.Printf("Samples: %d\n", r.Samples)
	fmt.Printf("Avg Latency: %.2f us\n", r.AvgUs)
	fmt.Printf("p50 (Median): %d us\n", r.P50Us)
	fmt.Printf("p99 (Tail):   %d us\n", r.P99Us)
	fmt.Printf("p99.9:        %d us\n", r.P999Us)
}
