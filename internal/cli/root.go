package cli

import (
	"github.com/forge-ai/textforge/internal/api"
	"github.com/forge-ai/textforge/internal/config"
	"github.com/forge-ai/textforge/internal/llm"
	"github.com/forge-ai/textforge/internal/logging"
	"github.com/forge-ai/textforge/internal/textgen"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "textforge",
	Version: api.Version,
	Short:   "Generate text with any configured AI provider",
	Long: `textforge builds a prompt from an instruction and optional subject text
and sends it to one of the configured AI providers.

Providers are registered from GEMINI_API_KEY, OPENAI_API_KEY,
ANTHROPIC_API_KEY, OPENROUTER_API_KEY and an optional PROVIDERS_FILE.`,
	SilenceUsage: true,
}

// newService builds the generation service from the environment.
// Tests replace it with a stub.
var newService = func() (api.Generator, error) {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	logging.Setup(cfg.LogFormat, cfg.Debug)
	if err != nil {
		return nil, err
	}
	d, err := llm.NewDispatcher(cfg)
	if err != nil {
		return nil, err
	}
	return textgen.New(d), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}
