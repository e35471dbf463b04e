package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/storage"
)

var supportedProviders = []string{"gemini", "openai"}

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage ai provider API keys kept in the local store",
}

var credentialsSetCmd = &cobra.Command{
	Use:       "set <provider>",
	Short:     "Store an API key for gemini or openai",
	Args:      cobra.ExactArgs(1),
	ValidArgs: supportedProviders,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger()
		config := mustConfig(logger)

		provider, err := parseProvider(args[0])
		if err != nil {
			logger.Fatal("setting credentials", zap.Error(err))
		}

		key, _ := cmd.Flags().GetString("key")
		if key == "" {
			keyPrompt := promptui.Prompt{
				Label: fmt.Sprintf("%s API key", provider),
				Mask:  '*',
				Validate: func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("key must not be empty")
					}
					return nil
				},
			}
			if key, err = keyPrompt.Run(); err != nil {
				logger.Fatal("reading api key", zap.Error(err))
			}
		}

		store, err := openStorage(config)
		if err != nil {
			logger.Fatal("opening storage", zap.Error(err))
		}
		defer store.Close()

		if err := store.Put(ctx, storage.CredentialKey(provider), []byte(strings.TrimSpace(key))); err != nil {
			logger.Fatal("storing api key", zap.Error(err))
		}
		logger.Info("api key stored", zap.String("provider", provider))
	},
}

var credentialsDeleteCmd = &cobra.Command{
	Use:       "delete <provider>",
	Short:     "Remove a stored API key",
	Args:      cobra.ExactArgs(1),
	ValidArgs: supportedProviders,
	Run: func(_ *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger()
		config := mustConfig(logger)

		provider, err := parseProvider(args[0])
		if err != nil {
			logger.Fatal("deleting credentials", zap.Error(err))
		}

		store, err := openStorage(config)
		if err != nil {
			logger.Fatal("opening storage", zap.Error(err))
		}
		defer store.Close()

		if err := store.Delete(ctx, storage.CredentialKey(provider)); err != nil {
			logger.Fatal("deleting api key", zap.Error(err))
		}
		logger.Info("api key deleted", zap.String("provider", provider))
	},
}

var credentialsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers with a stored API key",
	Run: func(_ *cobra.Command, _ []string) {
		ctx := context.Background()
		logger := newLogger()
		config := mustConfig(logger)

		store, err := openStorage(config)
		if err != nil {
			logger.Fatal("opening storage", zap.Error(err))
		}
		defer store.Close()

		keys, err := store.Keys(ctx, storage.CredentialKey(""))
		if err != nil {
			logger.Fatal("listing credentials", zap.Error(err))
		}
		for _, key := range keys {
			fmt.Println(strings.TrimPrefix(key, storage.CredentialKey("")))
		}
	},
}

func init() {
	rootCmd.AddCommand(credentialsCmd)
	credentialsCmd.AddCommand(credentialsSetCmd, credentialsDeleteCmd, credentialsListCmd)

	credentialsSetCmd.Flags().String("key", "", "api key; prompted for when unset")
}

func parseProvider(s string) (string, error) {
	provider := strings.ToLower(strings.TrimSpace(s))
	for _, p := range supportedProviders {
		if p == provider {
			return provider, nil
		}
	}
	return "", fmt.Errorf("unsupported provider %q (expected %s)", s, strings.Join(supportedProviders, " or "))
}
