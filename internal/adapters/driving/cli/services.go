package cli

import (
	"fmt"
	"os"

	"github.com/custodia-labs/docscout-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docscout-cli/internal/adapters/driven/ocr/tesseract"
	"github.com/custodia-labs/docscout-cli/internal/adapters/driven/oracle/anthropic"
	"github.com/custodia-labs/docscout-cli/internal/adapters/driven/oracle/openai"
	"github.com/custodia-labs/docscout-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docscout-cli/internal/core/services"
	"github.com/custodia-labs/docscout-cli/internal/extractors"
)

// Factory hooks, overridable in tests.
var (
	newConfigStore = func() (driven.ConfigStore, error) {
		return file.NewConfigStore("")
	}

	newHistoryStore = func() (driven.RunHistoryStore, error) {
		return sqlite.NewHistoryStore("")
	}

	newPipeline = buildPipeline
)

// buildPipeline assembles the search pipeline for one invocation.
func buildPipeline(provider string) (driving.SearchPipeline, error) {
	cfg, err := newConfigStore()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	oracle, err := buildOracle(provider, cfg)
	if err != nil {
		return nil, err
	}

	ocr := tesseract.New()
	registry := extractors.NewDefaultRegistry(ocr)
	scanner := services.NewScanner(registry.SupportedExtensions())

	return services.NewPipeline(scanner, registry, oracle, ocr), nil
}

// buildOracle selects and configures the relevance oracle. The
// provider comes from the --oracle flag, falling back to the config
// file, falling back to openai. API keys are taken from the
// environment first so they never have to be written to disk.
func buildOracle(provider string, cfg driven.ConfigStore) (driven.RelevanceOracle, error) {
	if provider == "" {
		provider = cfg.GetString("oracle.provider")
	}
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			key = cfg.GetString("openai.api_key")
		}
		if key == "" {
			return nil, fmt.Errorf("openai API key not set: export OPENAI_API_KEY or run `docscout config set openai.api_key <key>`")
		}
		return openai.New(openai.Config{
			APIKey:  key,
			BaseURL: cfg.GetString("openai.base_url"),
			Model:   cfg.GetString("openai.model"),
		})

	case "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			key = cfg.GetString("anthropic.api_key")
		}
		if key == "" {
			return nil, fmt.Errorf("anthropic API key not set: export ANTHROPIC_API_KEY or run `docscout config set anthropic.api_key <key>`")
		}
		return anthropic.New(anthropic.Config{
			APIKey:  key,
			BaseURL: cfg.GetString("anthropic.base_url"),
			Model:   cfg.GetString("anthropic.model"),
		})

	default:
		return nil, fmt.Errorf("unknown oracle provider %q (supported: openai, anthropic)", provider)
	}
}
