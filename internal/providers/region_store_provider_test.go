package providers

import (
	"os"
	"path/filepath"
	"testing"

	"fihealth/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegionStoreProvider_FromSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	settings := `{"region_configuration": {"Spain2": {"external_network_name": "public"}, "Trento": {}}}`
	require.NoError(t, os.WriteFile(path, []byte(settings), 0644))

	conf := &structures.Config{
		App:     structures.AppConfig{Settings: path},
		Regions: structures.RegionsConfig{Names: []string{"Ignored"}},
	}
	store := NewRegionStoreProvider(conf, &cacheTestLogger{})

	assert.Equal(t, []string{"Spain2", "Trento"}, store.Keys())
}

func TestNewRegionStoreProvider_FromConfigNames(t *testing.T) {
	conf := &structures.Config{
		Regions: structures.RegionsConfig{Names: []string{"Region2", "Region1"}},
	}
	store := NewRegionStoreProvider(conf, &cacheTestLogger{})

	assert.Equal(t, []string{"Region1", "Region2"}, store.Keys())
}

func TestNewRegionStoreProvider_BadSettingsFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	conf := &structures.Config{
		App:     structures.AppConfig{Settings: path},
		Regions: structures.RegionsConfig{Names: []string{"Region1"}},
	}
	store := NewRegionStoreProvider(conf, &cacheTestLogger{})

	assert.Equal(t, []string{"Region1"}, store.Keys())
}
