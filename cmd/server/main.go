// Command server starts the fault-tree analysis REST service
// (internal/app, internal/server) behind a config loaded by
// internal/config, shutting down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kegliz/fta/internal/app"
	"github.com/kegliz/fta/internal/config"
)

var version = "dev"

func main() {
	var (
		configFile = flag.String("config", "", "path to a config file (yaml/json/toml)")
		port       = flag.Int("port", 0, "port to listen on (overrides config)")
		localOnly  = flag.Bool("local-only", false, "bind to 127.0.0.1 only")
	)
	flag.Parse()

	cfg, err := config.Load(config.Options{ConfigFile: *configFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}

	if *port != 0 {
		cfg.Set("port", *port)
	}
	if *localOnly {
		cfg.Set("local_only", true)
	}

	srv, err := app.NewServer(app.ServerOptions{C: cfg, Version: version})
	if err != nil {
		fmt.Fprintln(os.Stderr, "building server:", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.GetInt("port"), cfg.GetBool("local_only"))
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintln(os.Stderr, "server error:", err)
			os.Exit(1)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "shutdown error:", err)
			os.Exit(1)
		}
	}
}
