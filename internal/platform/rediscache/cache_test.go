package rediscache_test

import (
	"testing"

	"github.com/phrazzld/taskboard-api/internal/platform/rediscache"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil client", func(t *testing.T) {
		c, err := rediscache.New(rediscache.Config{})
		assert.ErrorIs(t, err, rediscache.ErrNilClient)
		assert.Nil(t, c)
	})

	t.Run("valid client", func(t *testing.T) {
		client := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
		defer func() { _ = client.Close() }()

		c, err := rediscache.New(rediscache.Config{Client: client})
		require.NoError(t, err)
		assert.NotNil(t, c)
	})
}

func TestClose_DoesNotOwnClient(t *testing.T) {
	t.Parallel()

	client := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
	defer func() { _ = client.Close() }()

	c, err := rediscache.New(rediscache.Config{Client: client, CloseClient: false})
	require.NoError(t, err)

	// Close must be a no-op when the cache does not own the client,
	// and stays safe when called repeatedly.
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
