package repositories

import (
	"context"
	"testing"

	"antifraud/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_Memory(t *testing.T) {
	store, err := OpenStore(config.Config{Store: config.StoreMemory})
	require.NoError(t, err)

	assert.IsType(t, &MemoryAccountRepository{}, store.Accounts)
	assert.Nil(t, store.DB)
	assert.Nil(t, store.Cache)
	assert.NoError(t, store.PingDB(context.Background()))
	assert.NoError(t, store.Close())
}

func TestOpenStore_Unknown(t *testing.T) {
	_, err := OpenStore(config.Config{Store: "sqlite"})
	assert.EqualError(t, err, `unknown store "sqlite"`)
}
