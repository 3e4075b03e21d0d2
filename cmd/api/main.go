package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aibraindb/LexiUIServer/internal/config"
	"github.com/aibraindb/LexiUIServer/internal/metrics"
	"github.com/aibraindb/LexiUIServer/internal/ocr"
	"github.com/aibraindb/LexiUIServer/internal/ocrapi"
	"github.com/aibraindb/LexiUIServer/internal/pipeline"
	"github.com/aibraindb/LexiUIServer/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load() // loads .env first, so LOG_* from it apply below
	tlog := telemetry.Init(telemetry.FromEnv(config.GetEnv))
	if err != nil {
		tlog.Fatal().Err(err).Msg("config_invalid")
	}

	engineCfg, err := ocr.ParseConfig(cfg.TesseractConfig)
	if err != nil {
		tlog.Fatal().Err(err).Str("tesseract_config", cfg.TesseractConfig).Msg("tesseract_config_invalid")
	}
	engine, err := ocr.New(cfg.OCRLang, engineCfg)
	if err != nil {
		tlog.Fatal().Err(err).Msg("ocr_engine_init_fail")
	}
	if !engine.Available() {
		tlog.Warn().Msg("ocr_engine_unavailable: build with -tags ocr and cgo; POST /ocr will fail")
	}

	m := metrics.New()
	svc := pipeline.NewService(cfg.Pipeline(), engine, m)

	tlog.Info().
		Str("addr", cfg.Addr()).
		Str("env", cfg.AppEnv).
		Str("engine", engine.Name()).
		Str("lang", cfg.OCRLang).
		Str("tesseract_config", cfg.TesseractConfig).
		Int("target_dpi", cfg.TargetDPI).
		Str("binarization", cfg.Binarization.String()).
		Msg("booting page ocr service")

	app := ocrapi.NewApp(cfg, svc, m)

	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			tlog.Fatal().Err(err).Msg("listen_fail")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	tlog.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		tlog.Error().Err(err).Msg("shutdown_fail")
	}
}
