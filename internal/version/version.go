package version

import "fmt"

// Заполняются линкером при сборке:
//
//	-ldflags "-X underkingdom-server/internal/version.Version=..."
var (
	Version     = "dev"
	BuildCommit string
	BuildDate   string // YYYY-MM-DD (UTC)
)

// VersionInfo - метаданные сборки в структурном виде
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info возвращает метаданные сборки. Безопасно в любой момент.
func Info() VersionInfo {
	return VersionInfo{
		Version: Version,
		Commit:  coalesce(BuildCommit, "unknown"),
		Date:    coalesce(BuildDate, "unknown"),
	}
}

// String возвращает строку версии для логов и CLI
func String() string {
	info := Info()
	return fmt.Sprintf("underkingdom-server %s commit[%s] date[%s]",
		info.Version, info.Commit, info.Date)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
