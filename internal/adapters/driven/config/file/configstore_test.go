package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, ConfigFileName), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "openai"))
	require.NoError(t, store.Set("server.port", 8080))
	require.NoError(t, store.Set("library.watch", true))
	require.NoError(t, store.Set("library.tags", []string{"rock", "pop"}))

	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, 8080, store.GetInt("server.port"))
	assert.True(t, store.GetBool("library.watch"))
	assert.Equal(t, []string{"rock", "pop"}, store.GetStringSlice("library.tags"))

	// Wrong types and missing keys yield zero values.
	assert.Empty(t, store.GetString("server.port"))
	assert.Zero(t, store.GetInt("llm.provider"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_Set_EmptyKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("", "x"))
}

func TestConfigStore_Persistence_WritesTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "ollama"))
	require.NoError(t, store.Set("llm.base_url", "http://localhost:11434"))
	require.NoError(t, store.Set("server.addr", ":9090"))
	require.NoError(t, store.Set("server.port", 9090))
	require.NoError(t, store.Set("library.tags", []string{"jazz"}))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[llm]")
	assert.Contains(t, string(raw), "[server]")
	assert.NotContains(t, string(raw), `"llm.provider"`)

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "ollama", reloaded.GetString("llm.provider"))
	assert.Equal(t, "http://localhost:11434", reloaded.GetString("llm.base_url"))
	assert.Equal(t, ":9090", reloaded.GetString("server.addr"))
	assert.Equal(t, 9090, reloaded.GetInt("server.port"))
	assert.Equal(t, []string{"jazz"}, reloaded.GetStringSlice("library.tags"))
	assert.Equal(t, []string{"library.tags", "llm.base_url", "llm.provider", "server.addr", "server.port"}, reloaded.Keys())
}

func TestConfigStore_Save_ConflictingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm", "flat"))
	assert.ErrorContains(t, store.Set("llm.provider", "openai"), "conflicts")
	_, ok := store.Get("llm.provider")
	assert.False(t, ok, "failed set is rolled back")
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	_, err = os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), nil, 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[llm\nprovider = "), 0600))

	_, err := NewConfigStore(dir)
	assert.ErrorContains(t, err, "parse")
}

func TestConfigStore_Load_PicksUpExternalEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	content := "[websearch]\nprovider = \"brave\"\ncache_ttl = \"5m\"\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0600))
	require.NoError(t, store.Load())

	assert.Equal(t, "brave", store.GetString("websearch.provider"))
	assert.Equal(t, "5m", store.GetString("websearch.cache_ttl"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("server.addr", ":8080")
			_ = store.GetString("server.addr")
		}()
	}
	wg.Wait()
	assert.Equal(t, ":8080", store.GetString("server.addr"))
}

func TestNestMap(t *testing.T) {
	nested, err := nestMap(map[string]any{"a.b.c": 1, "a.d": "x", "e": true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 1}, "d": "x"},
		"e": true,
	}, nested)
	assert.Equal(t, map[string]any{"a.b.c": 1, "a.d": "x", "e": true}, flattenMap(nested, ""))
}
