package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fihealth/internal/structures"

	"github.com/spf13/viper"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("app.webContext", "/")
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 3000)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("cbroker.host", "localhost")
	v.SetDefault("cbroker.port", 1026)
	v.SetDefault("cbroker.path", "/NGSI10/queryContext")
	v.SetDefault("cbroker.timeout", 10*time.Second)
	v.SetDefault("mailman.host", "localhost")
	v.SetDefault("mailman.port", 8000)
	v.SetDefault("mailman.path", "/")
	v.SetDefault("mailman.timeout", 10*time.Second)
	v.SetDefault("mailman.maxParallel", 8)
	v.SetDefault("monasca.host", "localhost")
	v.SetDefault("monasca.port", 8070)
	v.SetDefault("monasca.timeout", 10*time.Second)
	v.SetDefault("monasca.keystoneHost", "localhost")
	v.SetDefault("monasca.keystonePort", 4731)
	v.SetDefault("monasca.keystonePath", "/v3/auth/tokens")
	v.SetDefault("monasca.keystoneTimeout", 10*time.Second)
	v.SetDefault("jenkins.timeout", 10*time.Second)
	v.SetDefault("cache.ttl", 5*time.Second)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setConfigDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "FIHEALTH_LOG_LEVEL")
	v.BindEnv("webServer.port", "FIHEALTH_PORT")
	v.BindEnv("cbroker.host", "FIHEALTH_CBROKER_HOST")
	v.BindEnv("mailman.host", "FIHEALTH_MAILMAN_HOST")
	v.BindEnv("monasca.host", "FIHEALTH_MONASCA_HOST")
	v.BindEnv("monasca.keystonePass", "FIHEALTH_KEYSTONE_PASS")
	v.BindEnv("cache.enabled", "FIHEALTH_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if flags.LogLevel != "" {
		conf.Logger.Level = flags.LogLevel
	}
	if flags.ListenPort > 0 {
		conf.WebServer.Port = flags.ListenPort
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "FiHealthDashboard"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
