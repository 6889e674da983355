package config

import (
	"fmt"

	"github.com/sanctum-app/sanctum/pkg/chain/companion"
	"github.com/sanctum-app/sanctum/pkg/provider"
	"github.com/sanctum-app/sanctum/pkg/provider/google"
	"github.com/sanctum-app/sanctum/pkg/provider/openai"
)

type providerConfig struct {
	Type string `yaml:"type"`

	APIKey string `yaml:"api_key"`

	ChatModel     string `yaml:"chat_model,omitempty"`
	AnalysisModel string `yaml:"analysis_model,omitempty"`

	Temperature *float32 `yaml:"temperature,omitempty"`
}

func (c *Config) registerProvider(f *configFile) error {
	cfg := f.Provider

	var completer provider.Completer
	var analyzer provider.Analyzer

	switch cfg.Type {
	case "", "google":
		var options []google.Option

		if cfg.ChatModel != "" {
			options = append(options, google.WithChatModel(cfg.ChatModel))
		}

		if cfg.AnalysisModel != "" {
			options = append(options, google.WithAnalysisModel(cfg.AnalysisModel))
		}

		client, err := google.New(cfg.APIKey, options...)

		if err != nil {
			return err
		}

		completer, analyzer = client, client

	case "openai":
		var options []openai.Option

		if cfg.ChatModel != "" {
			options = append(options, openai.WithChatModel(cfg.ChatModel))
		}

		if cfg.AnalysisModel != "" {
			options = append(options, openai.WithAnalysisModel(cfg.AnalysisModel))
		}

		client, err := openai.New(cfg.APIKey, options...)

		if err != nil {
			return err
		}

		completer, analyzer = client, client

	default:
		return fmt.Errorf("unknown provider type: %s", cfg.Type)
	}

	options := []companion.Option{
		companion.WithCompleter(completer),
		companion.WithAnalyzer(analyzer),
	}

	if cfg.Temperature != nil {
		options = append(options, companion.WithTemperature(*cfg.Temperature))
	}

	chain, err := companion.New(options...)

	if err != nil {
		return err
	}

	c.Chain = chain

	return nil
}
