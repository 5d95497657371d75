package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gnana997/testscaffold/pkg/mcp"
	"github.com/gnana997/testscaffold/pkg/mcplog"
	"github.com/gnana997/testscaffold/pkg/pipeline"
	"github.com/gnana997/testscaffold/pkg/util"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read .testscaffold.yaml: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	command := os.Args[1]
	switch command {
	case "scan":
		root, _ := parseTarget(os.Args[2:])
		runner := newRunner(logger)
		defer runner.Close()

		report, err := runner.Scan(root, discoveryConfig(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d files analyzed (%d failed): %d components, %d functions in %s\n",
			report.FilesAnalyzed, report.FilesFailed,
			report.Components, report.Functions, report.Duration.Round(time.Millisecond))

	case "generate":
		root, overwrite := parseTarget(os.Args[2:])
		runner := newRunner(logger)
		defer runner.Close()

		report, err := runner.Generate(root, discoveryConfig(cfg), overwrite)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d scaffolds written, %d skipped, %d failed\n",
			report.FilesWritten, report.FilesSkipped, report.FilesFailed)

	case "watch":
		root, overwrite := parseTarget(os.Args[2:])
		runner := newRunner(logger)
		defer runner.Close()

		options := pipeline.DefaultWatchOptions()
		options.Overwrite = overwrite
		if cfg != nil && cfg.WatchDebounceMs > 0 {
			options.DebounceMs = cfg.WatchDebounceMs
		}

		watcher, err := pipeline.NewWatcher(runner, options, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start watcher: %v\n", err)
			os.Exit(1)
		}
		if err := watcher.Start(root); err != nil {
			fmt.Fprintf(os.Stderr, "failed to start watcher: %v\n", err)
			os.Exit(1)
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		_ = watcher.Stop()

	case "serve":
		runner := newRunner(logger)
		defer runner.Close()

		var toolLog *mcplog.Logger
		if cfg != nil && cfg.MCPLogPath != "" {
			toolLog, err = mcplog.NewLogger(cfg.MCPLogPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to open tool log: %v\n", err)
				os.Exit(1)
			}
			defer toolLog.Close()
		}

		srv := mcp.NewServer(runner, toolLog)
		if err := srv.ServeStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}

	case "version":
		fmt.Printf("testscaffold %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// newLogger builds the process logger from the project config. Logs go to
// stderr so serve can keep stdout for the protocol.
func newLogger(cfg *ProjectConfig) *slog.Logger {
	lc := util.DefaultLoggerConfig()
	lc.Output = os.Stderr
	if cfg != nil {
		if cfg.LogLevel != "" {
			lc.Level = util.LogLevel(cfg.LogLevel)
		}
		if cfg.LogFormat != "" {
			lc.Format = util.LogFormat(cfg.LogFormat)
		}
	}
	l := util.NewLogger(lc)
	util.SetDefault(l)
	return l
}

func newRunner(logger *slog.Logger) *pipeline.Runner {
	runner, err := pipeline.NewRunner(pipeline.Options{Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return runner
}

// parseTarget reads an optional root directory and --overwrite flag from the
// remaining arguments. The root defaults to the current directory.
func parseTarget(args []string) (root string, overwrite bool) {
	root = "."
	for _, arg := range args {
		switch arg {
		case "--overwrite":
			overwrite = true
		default:
			root = arg
		}
	}
	return root, overwrite
}

func printUsage() {
	fmt.Println("Usage: testscaffold <command> [dir] [--overwrite]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  scan       Analyze sources and report what is testable")
	fmt.Println("  generate   Write test scaffolds next to their sources")
	fmt.Println("  watch      Regenerate scaffolds as files change")
	fmt.Println("  serve      Start MCP server on stdio")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
}
