package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/polkiloo/mysticmart/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:         "https://mystic.example.com",
		SessionTTL:      time.Hour,
		AdminSessionTTL: 30 * time.Minute,
		CatalogCacheTTL: time.Minute,
	}
}
