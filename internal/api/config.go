package api

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration defaults, overridable through the environment.
const (
	DefaultBaseURL        = "https://api.ethiack.com"
	DefaultVersion        = "v1"
	DefaultConnectTimeout = 3 * time.Second
	DefaultReadTimeout    = 30 * time.Second
)

// Config carries everything an API call needs: endpoint location,
// credentials and transport timeouts. It is built once and passed into the
// client rather than read from ambient process state inside each call.
type Config struct {
	BaseURL string
	Version string

	APIKey    string
	APISecret string

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// FromEnv resolves a Config from the environment:
// ETHIACK_API_URL, ETHIACK_API_VER, ETHIACK_API_KEY, ETHIACK_API_SECRET,
// CONNECT_TIMEOUT and READ_TIMEOUT (seconds).
func FromEnv() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ETHIACK_API_URL", DefaultBaseURL)
	v.SetDefault("ETHIACK_API_VER", DefaultVersion)
	v.SetDefault("ETHIACK_API_KEY", "")
	v.SetDefault("ETHIACK_API_SECRET", "")
	v.SetDefault("CONNECT_TIMEOUT", int(DefaultConnectTimeout/time.Second))
	v.SetDefault("READ_TIMEOUT", int(DefaultReadTimeout/time.Second))

	return &Config{
		BaseURL:        strings.TrimRight(v.GetString("ETHIACK_API_URL"), "/"),
		Version:        v.GetString("ETHIACK_API_VER"),
		APIKey:         v.GetString("ETHIACK_API_KEY"),
		APISecret:      v.GetString("ETHIACK_API_SECRET"),
		ConnectTimeout: time.Duration(v.GetInt("CONNECT_TIMEOUT")) * time.Second,
		ReadTimeout:    time.Duration(v.GetInt("READ_TIMEOUT")) * time.Second,
	}
}

// credentials returns the basic-auth pair, failing when either half is
// missing. Checked before a request is built so a misconfiguration never
// surfaces as a network error.
func (c *Config) credentials() (key, secret string, err error) {
	if c.APIKey == "" || c.APISecret == "" {
		return "", "", &ConfigError{
			Reason: "API key and secret must be set (environment variables " +
				"ETHIACK_API_KEY and ETHIACK_API_SECRET)",
		}
	}
	return c.APIKey, c.APISecret, nil
}

// endpoint joins the base URL, version prefix and path.
func (c *Config) endpoint(path string) string {
	return c.BaseURL + "/" + c.Version + "/" + strings.TrimLeft(path, "/")
}
