// Package main is the entry point for the seed binary.
// It registers accounts through the account directory, from flags or a YAML file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"antifraud/internal/config"
	apperrors "antifraud/internal/errors"
	"antifraud/internal/logging"
	"antifraud/internal/models"
	"antifraud/internal/repositories"
	"antifraud/internal/services/account"
	"antifraud/internal/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// seedFile is the layout of --file.
type seedFile struct {
	Accounts []seedAccount `yaml:"accounts"`
}

type seedAccount struct {
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create antifraud API accounts",
		Long: `Registers accounts in the configured store. Existing usernames are skipped.

Example:
  seed --name "Ops" --username ops --password "$OPS_PASSWORD"
  seed --file accounts.yaml`,
		SilenceUsage: true,
		RunE:         runSeed,
	}

	rootCmd.Flags().String("name", "", "Display name of the account")
	rootCmd.Flags().StringP("username", "u", "", "Username of the account")
	rootCmd.Flags().StringP("password", "p", "", "Password of the account")
	rootCmd.Flags().StringP("file", "f", "", "YAML file with an accounts list")
	rootCmd.MarkFlagsMutuallyExclusive("file", "username")

	return rootCmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	inputs, err := collectInputs(cmd)
	if err != nil {
		return err
	}

	config.LoadEnv()
	cfg := config.Load()

	logger, err := logging.NewLoggerFromEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	store, err := repositories.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store, logger)

	svc := account.NewService(store.Accounts, utils.NewBcryptHasher(cfg.BcryptCost), nil)
	_, _, err = seedAccounts(cmd.Context(), svc, inputs, cmd.OutOrStdout())
	return err
}

func closeStore(store io.Closer, logger *logging.Logger) {
	if err := store.Close(); err != nil {
		logger.Warn("failed to close store", zap.Error(err))
	}
}

func collectInputs(cmd *cobra.Command) ([]models.CreateAccountInput, error) {
	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, fmt.Errorf("failed to get file flag: %w", err)
	}
	if path != "" {
		return loadSeedFile(path)
	}

	name, _ := cmd.Flags().GetString("name")
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	if username == "" {
		return nil, errors.New("either --file or --username is required")
	}
	if name == "" {
		name = username
	}
	return []models.CreateAccountInput{{Name: name, Username: username, Password: password}}, nil
}

// loadSeedFile reads accounts from a YAML file. Passwords may reference
// environment variables as $VAR or ${VAR}.
func loadSeedFile(path string) ([]models.CreateAccountInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(file.Accounts) == 0 {
		return nil, fmt.Errorf("seed file %s has no accounts", path)
	}

	inputs := make([]models.CreateAccountInput, 0, len(file.Accounts))
	for _, a := range file.Accounts {
		inputs = append(inputs, models.CreateAccountInput{
			Name:     a.Name,
			Username: a.Username,
			Password: os.ExpandEnv(a.Password),
		})
	}
	return inputs, nil
}

func seedAccounts(ctx context.Context, svc account.Service, inputs []models.CreateAccountInput, out io.Writer) (created, skipped int, err error) {
	for i := range inputs {
		resp, err := svc.Register(ctx, &inputs[i])
		switch {
		case err == nil:
			created++
			fmt.Fprintf(out, "created %s (id %d)\n", resp.Username, resp.ID)
		case errors.Is(err, apperrors.ErrUsernameTaken):
			skipped++
			fmt.Fprintf(out, "skipped %s: already exists\n", inputs[i].Username)
		default:
			return created, skipped, fmt.Errorf("account %q: %w", inputs[i].Username, err)
		}
	}

	fmt.Fprintf(out, "%d created, %d skipped\n", created, skipped)
	return created, skipped, nil
}
