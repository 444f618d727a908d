package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fihealth/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
app:
  webContext: /
  fiHealthUrl: https://fi-health.example.org/
webServer:
  host: 127.0.0.1
  port: 3000
logger:
  level: debug
  mode: 420
  dir: /tmp
regions:
  names: [Region1, Region2]
cbroker:
  host: cb.example.org
  port: 1026
  path: /NGSI10/queryContext
  timeout: 3s
  filter: [Region3]
idm:
  regionsAuthorized:
    - Spain2: admin-spain
mailman:
  host: mailman.example.org
  port: 8000
  path: /lists/
  emailFrom: noreply@example.org
monasca:
  host: monasca.example.org
  port: 8070
  keystoneHost: keystone.example.org
  keystonePort: 4731
  keystonePath: /v3/auth/tokens
  keystoneUser: ceilometer
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "fihealth.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfigProvider_ReadsFile(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "FiHealthDashboard", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, []string{"Region1", "Region2"}, conf.Regions.Names)
	assert.Equal(t, 3*time.Second, conf.Cbroker.Timeout)
	assert.Equal(t, []string{"Region3"}, conf.Cbroker.Filter)
	assert.Equal(t, "/lists/", conf.Mailman.Path)
	assert.Equal(t, 10*time.Second, conf.Monasca.KeystoneTimeout)
	require.Len(t, conf.IDM.RegionsAuthorized, 1)
	for _, username := range conf.IDM.RegionsAuthorized[0] {
		assert.Equal(t, "admin-spain", username)
	}
}

func TestNewConfigProvider_FlagsOverride(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, LogLevel: "warn", ListenPort: 4000})
	require.NoError(t, err)

	assert.Equal(t, "warn", conf.Logger.Level)
	assert.Equal(t, 4000, conf.WebServer.Port)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: "/nonexistent/fihealth.yml"})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "logger:\n  level: verbose\n  dir: /tmp\n")

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
