/*
Package main
File: main.go
Description: Server entry point. Loads the universe, opens the mission journal,
and runs the WebSocket hub, the mission frame loop and the HTTP API side by side.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/everforgeworks/galaxies-mission-control/internal/api"
	"github.com/everforgeworks/galaxies-mission-control/internal/game"
	"github.com/everforgeworks/galaxies-mission-control/internal/mission"
	"github.com/everforgeworks/galaxies-mission-control/internal/persistence"
)

type options struct {
	addr     string
	universe string
	db       string
	frame    time.Duration
	seed     int64
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// A missing .env is fine; flags and defaults cover everything.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Config: .env not loaded: %v", err)
	}

	var opts options
	rootCmd := &cobra.Command{
		Use:   "galaxies",
		Short: "GALAXIES mission control server",
		Long: `Runs the Galaxies game server: flight, cargo and equipment for the
player ship, and mission control for jobs issued by the factions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.addr, "addr", envOr("GALAXIES_ADDR", ":8081"), "HTTP listen address")
	rootCmd.Flags().StringVar(&opts.universe, "universe", envOr("GALAXIES_UNIVERSE", "universe.yaml"), "universe configuration file")
	rootCmd.Flags().StringVar(&opts.db, "db", envOr("GALAXIES_DB", "galaxies.db"), "mission journal database")
	rootCmd.Flags().DurationVar(&opts.frame, "frame", 100*time.Millisecond, "mission frame period")
	rootCmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (0 = time based)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	// 1. Load the static universe configuration from YAML
	universe, err := game.LoadUniverse(opts.universe)
	if err != nil {
		return fmt.Errorf("config fail: %w", err)
	}
	state := game.NewState(universe)

	// 2. Open the mission journal
	journal, err := persistence.Open(opts.db)
	if err != nil {
		return err
	}
	defer journal.Close()

	// 3. Wire mission control to the hub
	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	hub := api.NewHub()
	factory := mission.NewFactory(state, rand.New(rand.NewSource(seed)))
	control := mission.NewControl(state, factory, hub, journal)
	loop := mission.NewLoop(control, opts.frame)

	server := &api.Server{State: state, Loop: loop, Hub: hub, History: journal}
	httpServer := &http.Server{Addr: opts.addr, Handler: server.Routes()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error { return loop.Run(gctx) })

	// 4. Hot-reload: SIGHUP refreshes the universe without a restart
	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGHUP)
		defer signal.Stop(sigChan)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-sigChan:
				log.Println("SIGNAL: Reloading Universe...")
				u, err := game.LoadUniverse(opts.universe)
				if err != nil {
					log.Printf("SIGNAL: Reload failed: %v", err)
					continue
				}
				state.Reload(u)
			}
		}
	})

	// 5. Start the Server
	g.Go(func() error {
		log.Printf("GALAXIES: Mission Control live on %s", opts.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
