package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sir_venger/filedrop/internal/app/resthttp"
	"github.com/sir_venger/filedrop/internal/cli"
	"github.com/sir_venger/filedrop/internal/config"
	"github.com/sir_venger/filedrop/internal/logging"
)

const shutdownTimeout = 15 * time.Second

var rootCommand = &cobra.Command{
	Use:   "filedrop",
	Short: "Serve ./static and accept multipart uploads into ./uploads",
	Args:  cobra.NoArgs,
	Run:   cli.Mainify(rootMain),
}

var rootConfiguration struct {
	configPath string
	host       string
	port       int
	logLevel   string
}

func init() {
	flags := rootCommand.Flags()
	flags.SortFlags = false
	flags.StringVarP(&rootConfiguration.configPath, "config", "c", "", "Path to the YAML config (default $CONFIG_PATH or ./config.yaml)")
	flags.StringVar(&rootConfiguration.host, "host", "", "Bind host (overrides HOST)")
	flags.IntVarP(&rootConfiguration.port, "port", "p", 0, "Bind port (overrides PORT)")
	flags.StringVar(&rootConfiguration.logLevel, "log-level", "", "Log level: disabled|error|warn|info|debug")

	rootCommand.AddCommand(versionCommand)
}

// loadConfig собирает конфигурацию: дефолты < YAML < ENV < флаги.
func loadConfig(command *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(rootConfiguration.configPath)
	if err != nil {
		return nil, err
	}

	flags := command.Flags()
	if flags.Changed("host") {
		cfg.Host = rootConfiguration.host
		cfg.ListenAddr = ""
	}
	if flags.Changed("port") {
		cfg.Port = rootConfiguration.port
		cfg.ListenAddr = ""
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rootConfiguration.logLevel
	}

	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// rootMain поднимает HTTP-сервер и обеспечивает корректное завершение по сигналу.
func rootMain(command *cobra.Command, _ []string) error {
	cfg, err := loadConfig(command)
	if err != nil {
		return err
	}

	level, _ := logging.NameToLevel(cfg.LogLevel)
	logger := logging.New(os.Stderr, level)

	handler, _, err := resthttp.NewServer(cfg, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Infof("Listening on http://%s (static=%s, uploads=%s, mode=%s)",
			cfg.Addr(), cfg.StaticDir, cfg.UploadDir, cfg.Upload.Mode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT либо при ошибке listener'а.
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn(errors.Wrap(err, "shutdown"))
		}
		return nil
	})

	return eg.Wait()
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
