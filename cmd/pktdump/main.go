package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/annel0/protobridge/internal/catalog"
	"github.com/annel0/protobridge/internal/config"
	"github.com/annel0/protobridge/internal/logging"
	"github.com/annel0/protobridge/internal/protocol"
	"github.com/annel0/protobridge/internal/protocol/packettype"
	"github.com/annel0/protobridge/internal/protocol/version"
)

var (
	cfgFile     string
	logLevel    string
	metricsAddr string

	cfg     *config.Config
	metrics *protocol.Metrics

	rootCmd = &cobra.Command{
		Use:               "pktdump",
		Short:             "Разбор и воспроизведение кадров игрового протокола",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "путь к YAML конфигурации (или PROTOBRIDGE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "уровень логирования (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "адрес эндпоинта Prometheus, например :2112")

	rootCmd.AddCommand(revisionsCmd(), opcodesCmd(), decodeCmd(), recordCmd(), replayCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

// setup загружает конфигурацию, настраивает логи, таблицы и метрики.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if cfg, err = config.Load(cfgFile); err != nil {
		return err
	}
	if cmd.Flag("log-level").Changed {
		cfg.Log.Level = logLevel
	}
	if cmd.Flag("metrics-addr").Changed {
		cfg.Metrics.Addr = metricsAddr
	}

	level, err := logging.ParseLevel(cfg.Log.GetLevel())
	if err != nil {
		return err
	}
	logging.Init(logging.Options{Level: level, Console: cfg.Log.IsConsole()})

	if err := packettype.Prepare(); err != nil {
		return fmt.Errorf("ошибка загрузки таблиц опкодов: %w", err)
	}
	if err := catalog.Prepare(); err != nil {
		return fmt.Errorf("ошибка загрузки реестров: %w", err)
	}

	if addr := cfg.Metrics.GetAddr(); addr != "" {
		metrics = protocol.NewMetrics(prometheus.DefaultRegisterer)
		go func() {
			logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
			}
		}()
	}
	return nil
}

func newCodec() *protocol.Codec {
	if metrics != nil {
		return protocol.NewCodec(protocol.WithMetrics(metrics))
	}
	return protocol.NewCodec()
}

// newSession создаёт сессию с параметрами мира из конфигурации.
func newSession(rev version.Revision) (*protocol.Session, error) {
	s, err := protocol.NewSession(rev)
	if err != nil {
		return nil, err
	}
	s.Attrs.WorldHeight = cfg.World.GetWorldHeight()
	s.Attrs.HasSkyLight = !cfg.World.NoSkyLight
	return s, nil
}

// parseRevision принимает имя выпуска ("1.20.5") или номер протокола ("766").
func parseRevision(s string) (version.Revision, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return version.Normalize(version.Revision(n))
	}
	return version.Parse(s)
}
