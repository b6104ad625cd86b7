// gateway is the public-facing HTTP service.
// It accepts generation requests over HTTP POST and WebSocket frames,
// builds the prompt and forwards it to the selected AI provider.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forge-ai/textforge/internal/api"
	"github.com/forge-ai/textforge/internal/config"
	"github.com/forge-ai/textforge/internal/llm"
	"github.com/forge-ai/textforge/internal/logging"
	"github.com/forge-ai/textforge/internal/textgen"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	logging.Setup(cfg.LogFormat, cfg.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	d, err := llm.NewDispatcher(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("provider table")
	}
	if _, ok := cfg.Provider(cfg.DefaultProvider); !ok {
		log.Warn().Str("default", cfg.DefaultProvider).Msg("default provider not configured; requests without 'model' will fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info().Msg("shutdown signal, stopping gateway")
		cancel()
	}()

	svc := textgen.New(d)
	for _, p := range svc.Providers() {
		log.Info().Str("id", p.ID).Str("llm_model", p.Model).Msg("provider registered")
	}
	log.Info().Str("port", cfg.Port).Str("default", cfg.DefaultProvider).Msg("gateway online")

	if err := api.New(svc).Serve(ctx, ":"+cfg.Port, cfg.HTTPTimeout+10*time.Second); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
