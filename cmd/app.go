package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/ai"
	"github.com/spigell/career-compass/internal/ai/gemini"
	"github.com/spigell/career-compass/internal/ai/openai"
	"github.com/spigell/career-compass/internal/careers"
	"github.com/spigell/career-compass/internal/filtering"
	"github.com/spigell/career-compass/internal/logger"
	"github.com/spigell/career-compass/internal/secrets"
	"github.com/spigell/career-compass/internal/storage"
)

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func mustConfig(l *zap.Logger) *Config {
	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		l.Fatal("config is required")
	}
	return config
}

// loadDataset builds the effective dataset: the built-in catalogue, overridden
// and extended by the configured dataset file or, failing that, by the last
// stored upload. Configured filters run last.
func loadDataset(ctx context.Context, config *Config, store *storage.Store, l *zap.Logger) (*careers.Snapshot, error) {
	builtin, err := careers.Defaults()
	if err != nil {
		return nil, fmt.Errorf("loading built-in dataset: %w", err)
	}

	datasets := careers.NewStore(builtin)

	name, raw, err := uploadedDataset(ctx, config, store)
	if err != nil {
		return nil, err
	}

	if raw != nil {
		result, err := careers.Parse(name, raw)
		if err != nil {
			return nil, fmt.Errorf("parsing dataset %s: %w", name, err)
		}
		logReport(l, name, result.Report)

		merged := careers.Merge(builtin.Source()+"+"+filepath.Base(name), builtin, result.Snapshot(name))
		datasets.Publish(merged)
	}

	snapshot := datasets.Load()
	l.Debug("dataset loaded", zap.String("source", snapshot.Source()), zap.Int("careers", snapshot.Len()))

	return filtering.Run(ctx, l, []filtering.Filter{
		filtering.NewExcludedCareers(config.Filters.ExcludeCareers),
		filtering.NewExcludeFile(config.Filters.ExcludeFile),
	}, snapshot)
}

func uploadedDataset(ctx context.Context, config *Config, store *storage.Store) (string, []byte, error) {
	if file := strings.TrimSpace(config.Dataset.File); file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", nil, fmt.Errorf("reading dataset file: %w", err)
		}
		return file, raw, nil
	}

	if store == nil {
		return "", nil, nil
	}

	ds, err := store.LoadDataset(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	return ds.Name, ds.Raw, nil
}

func logReport(l *zap.Logger, name string, report careers.Report) {
	l.Info("dataset ingested",
		zap.String("file", name),
		zap.Int("initial", report.Initial),
		zap.Int("accepted", report.Accepted),
		zap.Int("rejected", report.Rejected),
	)
	for _, e := range report.Errors {
		l.Warn("career record rejected",
			zap.Int("index", e.Index),
			zap.String("id", e.ID),
			zap.String("reason", e.Reason),
		)
	}
}

func openStorage(config *Config) (*storage.Store, error) {
	store, err := storage.Open(config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("%w (set storage.path or %s_STORAGE_PATH)", err, envPrefix)
	}
	return store, nil
}

// newAIService resolves credentials for the configured provider. An API key
// comes from the key file, the provider's standard environment variable, the
// config value, or the credential store, in that order.
func newAIService(ctx context.Context, config *AIConfig, store *storage.Store, l *zap.Logger) (*ai.Service, error) {
	if config == nil {
		return nil, errors.New("ai configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider == "" {
		provider = "gemini"
	}

	var (
		generator    ai.Generator
		maxLogLength int
	)

	switch provider {
	case "gemini":
		cfg := config.Gemini
		if cfg == nil {
			cfg = &GeminiConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			File:  cfg.APIKeyFile,
			Env:   "GEMINI_API_KEY",
			Value: firstNonEmpty(cfg.APIKey, storedCredential(ctx, store, provider)),
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY or run 'credentials set gemini')", err)
		}
		g, err := gemini.NewGenerator(ctx, gemini.Config{APIKey: apiKey, Model: cfg.Model, MaxRetries: cfg.MaxRetries}, l)
		if err != nil {
			return nil, err
		}
		generator, maxLogLength = g, cfg.MaxLogLength
	case "openai":
		cfg := config.OpenAI
		if cfg == nil {
			cfg = &OpenAIConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			File:  cfg.APIKeyFile,
			Env:   "OPENAI_API_KEY",
			Value: firstNonEmpty(cfg.APIKey, storedCredential(ctx, store, provider)),
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.openai.api-key-file, OPENAI_API_KEY or run 'credentials set openai')", err)
		}
		g, err := openai.NewGenerator(openai.Config{APIKey: apiKey, Model: cfg.Model, BaseURL: cfg.BaseURL}, l)
		if err != nil {
			return nil, err
		}
		generator = g
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", config.Provider)
	}

	return ai.NewService(generator, l, maxLogLength), nil
}

func storedCredential(ctx context.Context, store *storage.Store, provider string) string {
	if store == nil {
		return ""
	}
	key, err := store.GetString(ctx, storage.CredentialKey(provider))
	if err != nil {
		return ""
	}
	return key
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
