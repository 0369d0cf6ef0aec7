package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/config"
	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/download"
	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/model"
)

func main() {
	// Command line flags
	var (
		urlFlag         = flag.String("url", "", "Album URL (https://www.xxpie.com/m/album?id=...)")
		outputFlag      = flag.String("output", "", "Output directory (overrides config)")
		configFlag      = flag.String("config", "", "Path to config file")
		qualityFlag     = flag.String("quality", "", "Quality tier: thumbnail, large500, large800, large1024, large, large1920, origin")
		concurrencyFlag = flag.Int("concurrency", 0, "Maximum concurrent downloads (overrides config)")
		retriesFlag     = flag.Int("retries", -1, "Retry attempts per photo (overrides config)")
		timeoutFlag     = flag.Float64("timeout", 0, "Per-request timeout in seconds (overrides config)")
		manifestFlag    = flag.Bool("manifest", false, "Write a manifest file into the album directory")
		verboseFlag     = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag      = flag.Bool("dry-run", false, "Fetch album info without downloading")
	)

	flag.Parse()

	// CLI mode - require URL
	if *urlFlag == "" && flag.NArg() == 0 {
		fmt.Println("Graduation Photo Downloader - Download photo albums from xxpie.com")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  gradphoto-dl -url <URL> [options]")
		fmt.Println("  gradphoto-dl <URL> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: gradphoto-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

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
	if *outputFlag != "" {
		settings.DownloadsPath = filepath.Join(*outputFlag, "{album}")
	}
	if *qualityFlag != "" {
		settings.Quality = *qualityFlag
	}
	if *concurrencyFlag > 0 {
		settings.MaxConcurrentDownloads = *concurrencyFlag
	}
	if *retriesFlag >= 0 {
		settings.DownloadMaxRetries = *retriesFlag
	}
	if *timeoutFlag > 0 {
		settings.TimeoutSeconds = *timeoutFlag
	}
	if *manifestFlag {
		settings.WriteManifest = true
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	// Get URL
	albumURL := *urlFlag
	if albumURL == "" && flag.NArg() > 0 {
		albumURL = flag.Arg(0)
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

		prefix := "    "
		switch event.Level {
		case download.LevelError:
			prefix = "[x] "
		case download.LevelWarning:
			prefix = "[!] "
		case download.LevelSuccess:
			prefix = "[+] "
		case download.LevelInfo:
			prefix = "[i] "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("Graduation Photo Downloader")
	fmt.Println("----------------------------------------")
	fmt.Println()

	if err := manager.Initialize(ctx, albumURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	album := manager.Album()
	fmt.Printf("\nAlbum directory: %s\n", album.Path)
	if total := album.TotalBytes(); total > 0 {
		fmt.Printf("Expected size: %.2f MB\n", float64(total)/1024/1024)
	}

	if *dryRunFlag {
		fmt.Println("\n[Dry run - not downloading]")
		for _, task := range manager.Tasks() {
			fmt.Printf("  %s\n", filepath.Base(task.DestPath))
		}
		return
	}

	// Start downloads
	fmt.Println("\nStarting downloads...")
	fmt.Println()

	result, err := manager.StartDownloads(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during download: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("----------------------------------------")
	fmt.Printf("Done in %s: %d downloaded, %d skipped, %d failed (%.2f MB)\n",
		result.Elapsed.Round(100*time.Millisecond), result.Succeeded, result.Skipped, result.Failed,
		float64(result.BytesReceived)/1024/1024)

	for _, failure := range result.Failures {
		fmt.Printf("  failed: %s (%s)\n", failure.Name, failure.Reason)
	}

	if ctx.Err() != nil && hasCancelled(result) {
		fmt.Println("\nDownload cancelled.")
		os.Exit(130)
	}
	if !result.Ok() {
		os.Exit(1)
	}
}

func hasCancelled(result *model.BatchResult) bool {
	for _, failure := range result.Failures {
		if failure.Reason == model.ReasonCancelled {
			return true
		}
	}
	return false
}
