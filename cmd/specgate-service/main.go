// Package main provides the entry point for specgate-service.
//
// specgate-service is a standalone service providing:
// - REST API for validating and merging spec trees
// - MCP server for agent integration
// - Optional file watcher that re-validates on change
//
// Usage:
//
//	specgate-service                    Start the service (default)
//	specgate-service serve              Start the service
//	specgate-service version            Show version
//	specgate-service status             Show service status
//	specgate-service stop               Stop the running service
//	specgate-service mcp                Start MCP server (stdio mode)
package main

import (
	"fmt"
	"os"

	"github.com/ternarybob/specgate/internal/api"
	"github.com/ternarybob/specgate/internal/config"
	"github.com/ternarybob/specgate/internal/logger"
	"github.com/ternarybob/specgate/internal/mcp"
	"github.com/ternarybob/specgate/internal/service"
)

// version is set via -ldflags at build time
var version = "dev"

func main() {
	api.SetVersion(version)

	if len(os.Args) < 2 {
		// Default: start service
		if err := cmdServe(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var err error
	switch os.Args[1] {
	case "serve", "start":
		err = cmdServe()
	case "version", "-v", "--version":
		cmdVersion()
	case "status":
		err = cmdStatus()
	case "stop":
		err = cmdStop()
	case "mcp", "mcp-server":
		err = cmdMCP()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`specgate-service - Specification validation and merge service

Usage:
  specgate-service [command]

Commands:
  serve         Start the service (default)
  version       Show version information
  status        Show service status
  stop          Stop the running service
  mcp           Start MCP server (stdio mode for agent integration)
  help          Show this help

Configuration:
  Config file: ./config.toml (see internal defaults for the layout)

Examples:
  specgate-service                       Start the service
  specgate-service mcp                   Start MCP server
  curl localhost:8430/health             Check service health
  curl -X POST localhost:8430/validate   Validate the configured spec root`)
}

func cmdVersion() {
	fmt.Printf("specgate-service version %s\n", version)
}

func cmdServe() error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if running, pid := service.IsRunning(cfg); running {
		return fmt.Errorf("service already running (PID %d)", pid)
	}

	logger.SetupLogger(cfg)
	defer logger.Stop()

	apiServer := api.NewServer(cfg)

	daemon := service.NewDaemon(cfg)
	if err := daemon.Start(apiServer.Handler()); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	fmt.Printf("specgate-service v%s started on %s\n", version, cfg.Address())
	fmt.Printf("API: http://%s/validate\n", cfg.Address())

	daemon.Wait()

	return nil
}

func cmdStatus() error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	running, pid := service.IsRunning(cfg)
	if running {
		fmt.Printf("specgate-service: running (PID %d)\n", pid)
		fmt.Printf("Address: %s\n", cfg.Address())
	} else {
		fmt.Println("specgate-service: stopped")
	}

	return nil
}

func cmdStop() error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	running, pid := service.IsRunning(cfg)
	if !running {
		fmt.Println("specgate-service is not running")
		return nil
	}

	fmt.Printf("Stopping specgate-service (PID %d)...\n", pid)
	if err := service.StopRunning(cfg); err != nil {
		return err
	}

	fmt.Println("specgate-service stopped")
	return nil
}

func cmdMCP() error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		cfg = config.DefaultConfig()
	}

	// MCP uses stdout for the protocol; logs go to file only.
	cfg.Logging.Output = []string{"file"}
	logger.SetupLogger(cfg)
	defer logger.Stop()

	// Optional spec root override
	if len(os.Args) > 2 {
		cfg.Specs.Root = os.Args[2]
	}

	mcpServer := mcp.NewServer(cfg, version)
	return mcpServer.ServeStdio()
}
