package structures

import (
	"net"
	"strconv"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type AppConfig struct {
	WebContext  string `yaml:"webContext" validate:"required"`
	Settings    string `yaml:"settings"`
	FiHealthUrl string `yaml:"fiHealthUrl"`
}

// RegionsConfig is the static region list used when no settings file is given.
type RegionsConfig struct {
	Names []string `yaml:"names"`
}

type ContextBrokerConfig struct {
	Host         string        `yaml:"host" validate:"required"`
	Port         int           `yaml:"port" validate:"required|uint|min:1"`
	Path         string        `yaml:"path" validate:"required"`
	Timeout      time.Duration `yaml:"timeout" validate:"required|min:1"`
	SyncInterval time.Duration `yaml:"syncInterval"`
	RetryMax     int           `yaml:"retryMax"`
	Filter       []string      `yaml:"filter"`
}

type IDMConfig struct {
	// RegionsAuthorized holds {regionName: username} pairs.
	RegionsAuthorized []map[string]string `yaml:"regionsAuthorized"`
}

type MailmanConfig struct {
	Host        string        `yaml:"host" validate:"required"`
	Port        int           `yaml:"port" validate:"required|uint|min:1"`
	Path        string        `yaml:"path" validate:"required"`
	EmailFrom   string        `yaml:"emailFrom"`
	Timeout     time.Duration `yaml:"timeout"`
	RetryMax    int           `yaml:"retryMax"`
	MaxParallel int           `yaml:"maxParallel"`
}

type MonascaConfig struct {
	Host            string        `yaml:"host" validate:"required"`
	Port            int           `yaml:"port" validate:"required|uint|min:1"`
	Timeout         time.Duration `yaml:"timeout"`
	KeystoneHost    string        `yaml:"keystoneHost" validate:"required"`
	KeystonePort    int           `yaml:"keystonePort" validate:"required|uint|min:1"`
	KeystonePath    string        `yaml:"keystonePath" validate:"required"`
	KeystoneUser    string        `yaml:"keystoneUser"`
	KeystonePass    string        `yaml:"keystonePass"`
	KeystoneTimeout time.Duration `yaml:"keystoneTimeout"`
}

type JenkinsConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Host          string        `yaml:"host"`
	Port          int           `yaml:"port"`
	Job           string        `yaml:"job"`
	ParameterName string        `yaml:"parameterName"`
	Timeout       time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	App       AppConfig           `yaml:"app"`
	WebServer Server              `yaml:"webServer"`
	Logger    LoggerConfig        `yaml:"logger"`
	Regions   RegionsConfig       `yaml:"regions"`
	Cbroker   ContextBrokerConfig `yaml:"cbroker"`
	IDM       IDMConfig           `yaml:"idm"`
	Mailman   MailmanConfig       `yaml:"mailman"`
	Monasca   MonascaConfig       `yaml:"monasca"`
	Jenkins   JenkinsConfig       `yaml:"jenkins"`
	Cache     CacheConfig         `yaml:"cache"`
	Metrics   MetricsConfig       `yaml:"metrics"`
}

// BaseURL joins host and port into an http base URL without a trailing slash.
func BaseURL(host string, port int) string {
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port))
}
