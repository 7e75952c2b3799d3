package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/agiangrant/esthetic/internal/server"
)

// Serve implements 'esthetic serve': run the demo server for one page.
func Serve(args []string) error {
	fs, logLevel := newFlagSet("serve")
	addr := fs.String("addr", ":8080", "listen address")
	configPath := fs.String("config", "", "config file (default: esthetic.toml in the project root)")
	if err := parse(fs, logLevel, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: esthetic serve [--addr :8080] [--config file] input.html")
	}

	config, err := LoadProjectConfig(*configPath)
	if err != nil {
		return err
	}
	page, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", fs.Arg(0), err)
	}

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(page, config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving %s on %s\n", fs.Arg(0), *addr)
	return srv.Run(ctx, *addr)
}
