package engine

import (
	"time"

	"github.com/spf13/viper"
)

// Config хранит параметры запуска движка и сервера.
// Источники: env-переменные с префиксом UK_, затем дефолты.
type Config struct {
	// Seed - мастер-зерно симуляции. 0 = случайное.
	Seed int64

	Port    int
	DataDir string
	SaveDir string

	// Размер стартовой арены
	MapWidth  int
	MapHeight int
}

// LoadConfig читает конфигурацию из окружения
func LoadConfig() Config {
	v := viper.New()
	v.SetEnvPrefix("UK")
	v.AutomaticEnv()

	v.SetDefault("seed", 0)
	v.SetDefault("port", 8080)
	v.SetDefault("data_dir", "data")
	v.SetDefault("save_dir", "saves")
	v.SetDefault("map_width", 48)
	v.SetDefault("map_height", 32)

	cfg := Config{
		Seed:      v.GetInt64("seed"),
		Port:      v.GetInt("port"),
		DataDir:   v.GetString("data_dir"),
		SaveDir:   v.GetString("save_dir"),
		MapWidth:  v.GetInt("map_width"),
		MapHeight: v.GetInt("map_height"),
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}
