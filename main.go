package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SpiderWeb/internal/config"
	webnet "SpiderWeb/internal/net"
	"SpiderWeb/internal/ui"
	"SpiderWeb/internal/web"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "spiderweb",
		Short:        "Draw and reshape web strands by touch",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runBoard(cmd.Context(), cfg)
		},
	}
	root.AddCommand(newDiscoverCommand())
	return root
}

func newDiscoverCommand() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List touch bridges advertised on the local network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			found := 0
			err := webnet.Browse(timeout, func(url string) {
				found++
				fmt.Fprintln(out, url)
			})
			if err != nil {
				return err
			}
			if found == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no touch bridges found")
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "how long to listen for answers")
	return cmd
}

func runBoard(ctx context.Context, cfg *config.Config) error {
	log.Println("Starting SpiderWeb board")
	a := app.New()
	scene := web.NewScene()
	board := ui.NewWebWidget(scene, cfg.StrokeWidth)

	// Quit the window on a signal; stop the bridge once the window is gone.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			log.Println("Shutting down")
			fyne.Do(a.Quit)
		case <-done:
		}
	}()

	bridgeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.Bridge {
		startBridge(bridgeCtx, cfg, board)
	}

	ui.RunApp(a, fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight), board)
	return nil
}

// startBridge serves remote touchpads and, if enabled, advertises them over mDNS.
// Everything it starts stops when ctx is cancelled.
func startBridge(ctx context.Context, cfg *config.Config, board *ui.WebWidget) {
	bridge := webnet.NewBridge(board.Scene(), board.Dispatch)
	go func() {
		if err := bridge.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Printf("[BRIDGE] %v", err)
			board.Dispatch(func() { board.SetStatus("Touch bridge stopped: " + err.Error()) })
		}
	}()

	ip, err := webnet.GetOutgoingIP()
	if err != nil {
		log.Printf("[BRIDGE] local address lookup failed: %v", err)
	} else {
		board.SetShareURL(webnet.ShareURL(ip, cfg.Port))
	}

	if !cfg.Advertise {
		return
	}
	server, err := webnet.Advertise(cfg.Port)
	if err != nil {
		log.Printf("[MDNS] %v", err)
		return
	}
	log.Printf("[MDNS] advertising touch bridge on port %d", cfg.Port)
	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			log.Printf("[MDNS] shutdown: %v", err)
		}
	}()
}
