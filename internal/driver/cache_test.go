package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsort/internal/config"
)

func TestCachePutGet(t *testing.T) {
	c, err := NewCache(t.TempDir())
	require.NoError(t, err)

	key, err := Key([]byte("[package]\n"), config.Default(), "1.0.0")
	require.NoError(t, err)

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(key, &Verdict{Sorted: true, Formatted: false, Changed: true}))
	v, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, v.Sorted)
	assert.False(t, v.Formatted)
	assert.True(t, v.Changed)
	assert.Equal(t, cacheSchemaVersion, v.Schema)

	require.NoError(t, c.DropAll())
	_, ok, err = c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheKeyDependsOnInputs(t *testing.T) {
	base := config.Default()
	content := []byte("[dependencies]\na = \"1\"\n")

	k1, err := Key(content, base, "1")
	require.NoError(t, err)

	again, err := Key(content, base, "1")
	require.NoError(t, err)
	assert.Equal(t, k1, again)

	withFile := base
	withFile.File = "/somewhere/tomlfmt.toml"
	sameAsBase, err := Key(content, withFile, "1")
	require.NoError(t, err)
	assert.Equal(t, k1, sameAsBase, "config file location must not affect the key")

	grouped := base
	grouped.Grouped = true
	k2, err := Key(content, grouped, "1")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	k3, err := Key(content, base, "2")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	k4, err := Key([]byte("[dependencies]\nb = \"1\"\n"), base, "1")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k4)
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	require.NoError(t, c.Put(Digest{}, &Verdict{}))
	_, ok, err := c.Get(Digest{})
	require.NoError(t, err)
	assert.False(t, ok)
}
