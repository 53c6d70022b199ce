package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"underkingdom-server/internal/data"
	"underkingdom-server/internal/domain"
	"underkingdom-server/internal/engine"
	"underkingdom-server/internal/infrastructure/storage"
	"underkingdom-server/internal/server"
	"underkingdom-server/internal/version"
	"underkingdom-server/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "underkingdom-server",
	Short: "Пошаговое ядро симуляции подземелья",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env опционален: боевое окружение задает переменные напрямую
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).Warn("failed to load .env")
		}
		logger.Init()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить сервер симуляции",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Показать версию сборки",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

var (
	seedFlag int64
	loadFlag string
)

func init() {
	serveCmd.Flags().Int64Var(&seedFlag, "seed", 0, "Мастер-зерно мира (0 = случайное)")
	serveCmd.Flags().StringVar(&loadFlag, "load", "", "Путь к снимку мира для восстановления")
	rootCmd.AddCommand(serveCmd, versionCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Log.Info("Запуск Underkingdom...")
	logger.Log.Info(version.String())

	cfg := engine.LoadConfig()
	if seedFlag != 0 {
		cfg.Seed = seedFlag
	}

	snaps := storage.NewSnapshotService(cfg.SaveDir)

	// Снимок несет зерно мира: при восстановлении оно важнее конфига
	var snap *storage.Snapshot
	if loadFlag != "" {
		loaded, err := snaps.Load(loadFlag)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		snap = loaded
		cfg.Seed = snap.Seed
	}
	logger.Log.WithField("seed", cfg.Seed).Info("🎲 Мастер-зерно мира")

	catalog, err := data.Load(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	game := engine.NewService(cfg, catalog)
	game.BuildArena()
	game.PlaceCampfire(domain.Position{X: 5, Y: 5})

	if snap != nil {
		n := game.RestoreSnapshot(snap)
		logger.Log.WithField("entities", n).Info("Снимок мира загружен")
	} else {
		if _, err := game.SpawnCreature("goblin", domain.Position{X: 8, Y: 8}); err != nil {
			logger.Log.WithError(err).Warn("не удалось заспавнить существо")
		}
		if _, err := game.SpawnCreature("goblin_shaman", domain.Position{X: 10, Y: 9}); err != nil {
			logger.Log.WithError(err).Warn("не удалось заспавнить существо")
		}
		if _, err := game.SpawnCreature("dire_wolf", domain.Position{X: 14, Y: 6}); err != nil {
			logger.Log.WithError(err).Warn("не удалось заспавнить существо")
		}
	}

	game.Start()

	httpSrv := server.New(game, fmt.Sprintf("%d", cfg.Port))
	go func() {
		if err := httpSrv.Run(); err != nil {
			logger.Log.WithError(err).Fatal("HTTP server stopped")
		}
	}()

	// Graceful shutdown: по сигналу сохраняем снимок мира
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	game.Stop()

	if path, err := snaps.Save(game.Capture()); err != nil {
		logger.Log.WithError(err).Error("не удалось сохранить снимок мира")
	} else {
		logger.Log.WithField("path", path).Info("Снимок мира сохранен")
	}

	logger.Log.Info("Сервер остановлен")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
