package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"antifraud/internal/logging"
	"antifraud/internal/models"
	"antifraud/internal/repositories"
	"antifraud/internal/services/account"
	"antifraud/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeedFile(t *testing.T) {
	t.Setenv("OPS_PASSWORD", "from-env")

	path := writeFile(t, `
accounts:
  - name: Operations
    username: ops
    password: ${OPS_PASSWORD}
  - name: Analyst
    username: analyst
    password: plain
`)

	inputs, err := loadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, []models.CreateAccountInput{
		{Name: "Operations", Username: "ops", Password: "from-env"},
		{Name: "Analyst", Username: "analyst", Password: "plain"},
	}, inputs)
}

func TestLoadSeedFileErrors(t *testing.T) {
	_, err := loadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read seed file")

	_, err = loadSeedFile(writeFile(t, "accounts: [oops"))
	assert.ErrorContains(t, err, "failed to parse seed file")

	_, err = loadSeedFile(writeFile(t, "accounts: []"))
	assert.ErrorContains(t, err, "has no accounts")
}

func TestSeedAccounts(t *testing.T) {
	svc := account.NewService(repositories.NewMemoryAccountRepository(), utils.NewBcryptHasher(bcrypt.MinCost), nil)
	var out bytes.Buffer

	created, skipped, err := seedAccounts(context.Background(), svc, []models.CreateAccountInput{
		{Name: "Ops", Username: "ops", Password: "pw"},
		{Name: "Ops again", Username: "OPS", Password: "pw"},
		{Name: "Analyst", Username: "analyst", Password: "pw"},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 1, skipped)
	assert.Contains(t, out.String(), "skipped OPS: already exists")
	assert.Contains(t, out.String(), "2 created, 1 skipped")
	assert.True(t, svc.Verify(context.Background(), "ops", "pw"))
}

func TestSeedAccountsStopsOnInvalidInput(t *testing.T) {
	svc := account.NewService(repositories.NewMemoryAccountRepository(), utils.NewBcryptHasher(bcrypt.MinCost), nil)

	created, _, err := seedAccounts(context.Background(), svc, []models.CreateAccountInput{
		{Name: "Ops", Username: "ops", Password: "pw"},
		{Name: "No password", Username: "nopass"},
	}, &bytes.Buffer{})

	assert.Equal(t, 1, created)
	assert.ErrorContains(t, err, `account "nopass"`)
}

func TestCollectInputsFromFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--username", "ops", "--password", "pw"}))

	inputs, err := collectInputs(cmd)
	require.NoError(t, err)
	assert.Equal(t, []models.CreateAccountInput{{Name: "ops", Username: "ops", Password: "pw"}}, inputs)

	_, err = collectInputs(newRootCmd())
	assert.EqualError(t, err, "either --file or --username is required")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseStoreLogsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := &logging.Logger{Logger: zap.New(core)}

	closeStore(closerFunc(func() error { return nil }), logger)
	assert.Zero(t, logs.Len())

	closeStore(closerFunc(func() error { return errors.New("pool busy") }), logger)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "failed to close store", entry.Message)
	assert.Equal(t, "pool busy", entry.ContextMap()["error"])
}
