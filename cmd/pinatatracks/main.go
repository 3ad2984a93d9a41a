package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"pinatatracks/internal/config"
	"pinatatracks/internal/logger"
	"pinatatracks/internal/pinata"
	"pinatatracks/internal/tracing"
	"pinatatracks/internal/utils"
	"pinatatracks/internal/web"
	"pinatatracks/pkg/models"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pinatatracks",
		Short:         "Pinata-backed track list for the music player",
		Long:          `pinatatracks proxies the Pinata public files API and serves the audio files of a group as a simple track list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the tracks API server",
		RunE:  runServe,
	}

	tracksCmd := &cobra.Command{
		Use:   "tracks",
		Short: "Print the tracks of a Pinata group",
		RunE:  runTracks,
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tracksCmd)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default ~/.pinatatracks/pinatatracks.yml)")
	rootCmd.PersistentFlags().String("pinata-jwt", "", "Pinata API JWT")
	rootCmd.PersistentFlags().String("api-url", "", "Pinata API base URL")
	rootCmd.PersistentFlags().String("gateway-url", "", "IPFS gateway base URL used for track URLs")
	rootCmd.PersistentFlags().StringSlice("allowed-origin", nil, "Origin allowed to read responses (repeatable)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Timeout for each Pinata request")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode for detailed logging")

	// Serve command flags
	serveCmd.Flags().Int("port", 0, "Port to serve the API on")
	serveCmd.Flags().Bool("trace", false, "Export OpenTelemetry traces to stderr")

	// Tracks command flags
	tracksCmd.Flags().String("group", "", "Pinata group ID")
	tracksCmd.Flags().Bool("json", false, "Print the tracks as JSON")

	return rootCmd
}

func loadAndValidateConfig(cmd *cobra.Command) (*models.Config, error) {
	// Set up debug mode first
	debug, _ := cmd.Flags().GetBool("debug")
	logger.SetDebugMode(debug)

	logger.Debug("Loading configuration...")

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Get flag values
	var flags models.Overrides
	flags.PinataJWT, _ = cmd.Flags().GetString("pinata-jwt")
	flags.APIURL, _ = cmd.Flags().GetString("api-url")
	flags.GatewayURL, _ = cmd.Flags().GetString("gateway-url")
	flags.AllowedOrigins, _ = cmd.Flags().GetStringSlice("allowed-origin")
	flags.UpstreamTimeout, _ = cmd.Flags().GetDuration("timeout")
	if cmd.Flags().Lookup("port") != nil {
		flags.Port, _ = cmd.Flags().GetInt("port")
	}

	// Merge with flags and environment
	config.MergeWithFlags(cfg, flags, os.Getenv)

	// Validate
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	if logger.IsDebugMode() {
		logger.Debug("Configuration loaded - API: %s, gateway: %s, origins: %v, timeout: %v, credential set: %t",
			cfg.APIURL, cfg.GatewayURL, cfg.AllowedOrigins, cfg.UpstreamTimeout, cfg.PinataJWT != "")
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Info("Starting tracks API server")

	cfg, err := loadAndValidateConfig(cmd)
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return err
	}

	logger.Debug("Server configuration - Port: %d", cfg.Port)

	// Tracing has to be installed before the server builds its handlers.
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		exporter, err := tracing.NewStdoutExporter(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		tp := tracing.Setup(exporter)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Warn("%v", err)
			}
		}()
		logger.Info("Tracing enabled, exporting spans to stderr")
	}

	server := web.NewServer(cfg)

	// Handle interrupt signals
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for either interrupt signal or server error
	select {
	case <-signalChan:
		logger.Info("Received interrupt signal, shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Stop(shutdownCtx); err != nil {
			logger.Error("Error during shutdown: %v", err)
			return err
		}
		logger.Info("Server shut down gracefully")
		return nil

	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error: %v", err)
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

func runTracks(cmd *cobra.Command, args []string) error {
	cfg, err := loadAndValidateConfig(cmd)
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return err
	}

	if cfg.PinataJWT == "" {
		return fmt.Errorf("missing %s env var", config.CredentialEnvVar)
	}

	group, _ := cmd.Flags().GetString("group")
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	client := pinata.NewClient(cfg.APIURL, cfg.PinataJWT, cfg.UpstreamTimeout)
	files, err := client.ListPublicFiles(ctx, group)
	logger.LogOperation("list tracks", start, err)
	if err != nil {
		return fmt.Errorf("failed to list files for group %q: %w", group, err)
	}

	tracks := utils.FilesToTracks(files, cfg.GatewayURL)

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(web.TracksResponse{Tracks: tracks})
	}

	if len(tracks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audio files found.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d track(s):\n\n", len(tracks))
	for _, track := range tracks {
		artist := track.Artist
		if artist == "" {
			artist = "Unknown Artist"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s by %s\n", track.Name, artist)
		fmt.Fprintf(cmd.OutOrStdout(), "  URL: %s\n", track.URL)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
