package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"playground/internal/api"
	"playground/internal/catalog"
	"playground/internal/certs"
	"playground/internal/prefs"
	"playground/internal/utils"
)

var configFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "playground",
		Short:        "Serve the game catalog",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml)")
	root.AddCommand(serveCmd(), validateCmd(), configCmd())
	return root
}

func loadConfig() (utils.Config, error) {
	v, err := utils.NewViper(configFile)
	if err != nil {
		return utils.Config{}, err
	}
	return utils.LoadConfig(v)
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the catalog and serve it over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	return cmd
}

func serve(ctx context.Context, cfg utils.Config) error {
	logger, closer := utils.SetupLogger(cfg.Log)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := prefs.Open(cfg.Prefs.Backend, cfg.Prefs.File, cfg.Prefs.RedisURL)
	if err != nil {
		return err
	}
	defer backend.Close()

	client := &http.Client{Timeout: cfg.Catalog.FetchTimeout}
	loader := catalog.NewLoader(cfg.Catalog.Manifest, cfg.Catalog.Root, client, logger)
	games := loader.Load(ctx)

	var handler http.Handler
	srv, err := api.NewServer(games, api.Options{
		EmbedHost:     cfg.Catalog.EmbedHostPrefix,
		SanitizeEmbed: cfg.Launch.SanitizeEmbed,
		StaticDir:     cfg.Static.Dir,
		Prefs:         backend,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("startup failed", "error", err)
		handler = api.FailureHandler(logger, err)
	} else {
		handler = srv.Router()
		if cfg.Catalog.Watch {
			go func() {
				if err := loader.Watch(ctx, cfg.Catalog.WatchDebounce, srv.SetCatalog); err != nil {
					logger.Error("manifest watcher stopped", "error", err)
				}
			}()
		}
	}

	httpServer := &http.Server{Addr: cfg.Server.Addr, Handler: handler}
	if cfg.Server.TLSCert != "" {
		tlsCfg, err := certs.NewCertManager(cfg.Server.TLSCert, cfg.Server.TLSKey).TLSConfig(time.Now())
		if err != nil {
			return err
		}
		httpServer.TLSConfig = tlsCfg
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server running", "addr", cfg.Server.Addr, "tls", httpServer.TLSConfig != nil)
		if httpServer.TLSConfig != nil {
			errCh <- httpServer.ListenAndServeTLS("", "")
			return
		}
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a manifest against the catalog schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			entries, err := catalog.Validate(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries, version %s\n", args[0], len(entries), catalog.Fingerprint(data))
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	})
	return cmd
}
