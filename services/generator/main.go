// generator consumes generation.requested messages from RabbitMQ and
// answers each with generation.complete or generation.failed.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/forge-ai/textforge/internal/config"
	"github.com/forge-ai/textforge/internal/llm"
	"github.com/forge-ai/textforge/internal/logging"
	"github.com/forge-ai/textforge/internal/textgen"
	"github.com/forge-ai/textforge/internal/worker"
	"github.com/forge-ai/textforge/shared/events"
	"github.com/forge-ai/textforge/shared/mq"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info().Msg("shutdown signal, stopping generator")
		cancel()
	}()

	broker, err := mq.New(ctx, cfg.AMQPURL)
	if err != nil {
		log.Fatal().Err(err).Msg("mq connect")
	}
	defer broker.Close()

	deliveries, err := broker.Subscribe(worker.Queue, events.GenerationRequested, cfg.Workers)
	if err != nil {
		log.Fatal().Err(err).Msg("subscribe")
	}

	log.Info().Int("workers", cfg.Workers).Str("queue", worker.Queue).Msg("generator online")

	if err := worker.New(textgen.New(d), broker).Run(ctx, deliveries, cfg.Workers); err != nil {
		log.Error().Err(err).Msg("generator exited")
	}
}
