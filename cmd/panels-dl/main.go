package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/panels-downloader/internal/config"
	"github.com/handiism/panels-downloader/internal/download"
	ioutils "github.com/handiism/panels-downloader/internal/io"
	"github.com/handiism/panels-downloader/internal/panels"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

func main() {
	// Command line flags
	var (
		manifestFlag    = flag.String("manifest", "", "Path to the media manifest (default \""+panels.DefaultManifestPath+"\")")
		outputFlag      = flag.String("output", "", "Output directory (default ./downloads)")
		configFlag      = flag.String("config", "", "Path to config file")
		connectionsFlag = flag.Int("connections", 0, "Maximum simultaneous requests per host (default 5)")
		verboseFlag     = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag      = flag.Bool("dry-run", false, "Resolve file names without downloading")
		reportFlag      = flag.String("report", "", "Write a JSON run report to this path")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *manifestFlag != "" {
		settings.ManifestPath = *manifestFlag
	} else if flag.NArg() > 0 {
		settings.ManifestPath = flag.Arg(0)
	}
	if *outputFlag != "" {
		settings.DownloadsPath = *outputFlag
	}
	if *connectionsFlag > 0 {
		settings.MaxConnectionsPerHost = *connectionsFlag
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager := download.NewManager(settings, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		switch event.Level {
		case download.LevelError:
			fmt.Println(errorStyle.Render("✗ " + event.Message))
		case download.LevelWarning:
			fmt.Println(warningStyle.Render("! " + event.Message))
		case download.LevelSuccess:
			fmt.Println(successStyle.Render("✓ " + event.Message))
		case download.LevelInfo:
			fmt.Println(infoStyle.Render("› " + event.Message))
		default:
			fmt.Println(dimStyle.Render("  " + event.Message))
		}
	})

	fmt.Println(titleStyle.Render("Panels Downloader"))
	fmt.Println()

	if err := manager.Initialize(ctx); err != nil {
		switch {
		case errors.Is(err, panels.ErrManifestEmpty):
			fmt.Fprintln(os.Stderr, errorStyle.Render(`JSON does not have a "data" property at its root.`))
		case errors.Is(err, panels.ErrManifestMalformed):
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Manifest %s is not valid: %v", settings.ManifestPath, err)))
		default:
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error loading manifest: %v", err)))
		}
		os.Exit(1)
	}

	if *dryRunFlag {
		fmt.Println(dimStyle.Render("\n[Dry run - not downloading]"))
		for _, name := range manager.TaskNames() {
			path := filepath.Join(settings.DownloadsPath, name)
			if ioutils.FileExists(path) {
				fmt.Println("  " + path + dimStyle.Render(" (overwrite)"))
				continue
			}
			fmt.Println("  " + path)
		}
		return
	}

	err := manager.StartDownloads(ctx)

	if *reportFlag != "" {
		if rerr := manager.WriteReport(*reportFlag); rerr != nil {
			fmt.Fprintln(os.Stderr, warningStyle.Render(fmt.Sprintf("Error writing report: %v", rerr)))
		}
	}

	summary := manager.Summary()
	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Complete! %d succeeded, %d failed, %d skipped (%.2f MB)",
		summary.Succeeded, summary.Failed, summary.Skipped, float64(summary.Bytes)/1024/1024)))

	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during download: %v\n", err)
		os.Exit(1)
	}
}
