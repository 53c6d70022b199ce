package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log - глобальный логгер приложения.
// Доступен сразу с дефолтными настройками, Init уточняет их из окружения.
var Log = logrus.New()

// Init настраивает глобальный логгер. Вызывается один раз при старте.
// Уровень и формат берутся из окружения:
//
//	LOG_LEVEL  - debug/info/warn/error (по умолчанию info)
//	LOG_FORMAT - "json" для продакшена, иначе цветной текст
func Init() {
	levelName, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// WithComponent возвращает логгер с проставленным полем component
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
