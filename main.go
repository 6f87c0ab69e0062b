package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/memmaker/isotactics/engine/util"
	"github.com/memmaker/isotactics/game"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configPath := flag.String("config", "", "world file (YAML), defaults to $"+game.ConfigEnv+" or the demo world")
	generate := flag.Bool("generate", false, "generate the world from noise instead of loading it")
	seed := flag.Int64("seed", 1, "seed for world generation and attack rolls")
	character := flag.Int("character", 0, "index of the character whose vision is shown")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address and keep running")
	verbose := flag.Bool("v", false, "log everything")
	flag.Parse()

	if *verbose {
		util.SetLogFilter(util.LogLevelDebug, util.LogAll)
	}

	config, err := loadConfig(*configPath, *generate, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "isotactics: %v\n", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	world, err := game.NewWorld(config, registry, game.WithSeed(*seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "isotactics: %+v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var server *http.Server
	if *metricsAddr != "" {
		server = serveMetrics(*metricsAddr, registry)
	}

	if err := runDemo(ctx, world, *character, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "isotactics: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintln(os.Stderr, world.Blocking.Timings())
	}

	if server != nil {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}
}

func loadConfig(path string, generate bool, seed int64) (game.WorldConfig, error) {
	if generate {
		return game.GenerateWorldConfig(game.DefaultGeneratorConfig(seed)), nil
	}
	return game.LoadWorldConfig(path)
}

func serveMetrics(addr string, registry *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			util.LogWorldError(fmt.Sprintf("[Metrics] %v", err))
		}
	}()
	util.LogWorldInfo(fmt.Sprintf("[Metrics] serving on %s/metrics", addr))
	return server
}
