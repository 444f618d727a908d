package providers

import (
	"fmt"
	"os"

	"fihealth/internal/models"
	"fihealth/internal/structures"

	json "github.com/goccy/go-json"
)

type regionSettings struct {
	RegionConfiguration map[string]json.RawMessage `json:"region_configuration"`
}

// LoadRegionNames reads the region names from the settings file, falling back
// to regions.names when the file is not configured or cannot be read.
func LoadRegionNames(conf *structures.Config, logger Logger) []string {
	if conf.App.Settings == "" {
		return conf.Regions.Names
	}
	names, err := readSettingsFile(conf.App.Settings)
	if err != nil {
		logger.Warnf(TypeApp, "Fail reading settings file %s: %s", conf.App.Settings, err)
		return conf.Regions.Names
	}
	return names
}

func readSettingsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var settings regionSettings
	if err = json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	names := make([]string, 0, len(settings.RegionConfiguration))
	for name := range settings.RegionConfiguration {
		names = append(names, name)
	}
	return names, nil
}

// NewRegionStoreProvider builds the process-wide region store seeded with the static region list.
func NewRegionStoreProvider(conf *structures.Config, logger Logger) *models.RegionStore {
	store := models.NewRegionStore()
	store.Init(LoadRegionNames(conf, logger))
	logger.Infof(TypeApp, "Region store initialized with %d regions", store.Len())
	return store
}
