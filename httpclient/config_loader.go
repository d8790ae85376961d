// httpclient/config_loader.go
// Description: functions to load configuration values from a file or environment variables.
package httpclient

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by LoadConfigFromEnv, for example
// CSCART_CUSTOM_TIMEOUT.
const EnvPrefix = "CSCART"

// configKeys lists every ClientConfig key that can be loaded.
var configKeys = []string{
	"log_level",
	"log_output_format",
	"log_console_separator",
	"hide_sensitive_data",
	"user_agent",
	"max_concurrent_requests",
	"concurrency_acquire_timeout",
	"custom_timeout",
	"follow_redirects",
	"max_redirects",
	"proxy_url",
	"proxy_username",
	"proxy_password",
	"enable_cookie_jar",
}

// LoadConfigFromFile loads a ClientConfig from a JSON, YAML or TOML file; the format
// follows the file extension. Unknown keys are ignored so the same file may carry
// settings for other components. Defaults are applied and the result validated.
func LoadConfigFromFile(path string) (*ClientConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setViperDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read the configuration file %s: %w", path, err)
	}
	return decodeClientConfig(v)
}

// LoadConfigFromEnv loads a ClientConfig from CSCART_-prefixed environment variables.
// Defaults are applied and the result validated.
func LoadConfigFromEnv() (*ClientConfig, error) {
	v := viper.New()
	setViperDefaults(v)
	BindEnv(v)
	return decodeClientConfig(v)
}

// BindEnv binds every ClientConfig key of v to its CSCART_ environment variable.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}
}

// FromViper decodes a ClientConfig from an already-populated viper instance, for
// callers that layer flags or their own config file over the client keys. The
// loader defaults are registered on v first.
func FromViper(v *viper.Viper) (*ClientConfig, error) {
	setViperDefaults(v)
	return decodeClientConfig(v)
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("hide_sensitive_data", DefaultHideSensitiveData)
	v.SetDefault("follow_redirects", DefaultFollowRedirects)
}

func decodeClientConfig(v *viper.Viper) (*ClientConfig, error) {
	var config ClientConfig
	if err := v.Unmarshal(&config, viper.DecodeHook(durationHook())); err != nil {
		return nil, fmt.Errorf("failed to decode client configuration: %w", err)
	}

	SetDefaultValuesClientConfig(&config)
	if err := validateClientConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// durationHook decodes time.Duration fields from Go duration strings ("30s", "1m") or
// from bare numbers, which are taken as seconds. Numeric strings from the environment
// count as bare numbers.
func durationHook() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != durationType {
			return data, nil
		}
		switch v := data.(type) {
		case time.Duration:
			return v, nil
		case int:
			return time.Duration(v) * time.Second, nil
		case int32:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case uint:
			return time.Duration(v) * time.Second, nil
		case uint32:
			return time.Duration(v) * time.Second, nil
		case uint64:
			return time.Duration(v) * time.Second, nil
		case float32:
			return time.Duration(float64(v) * float64(time.Second)), nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		case string:
			raw := strings.TrimSpace(v)
			if raw == "" {
				return time.Duration(0), nil
			}
			if seconds, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(seconds, 0) && !math.IsNaN(seconds) {
				return time.Duration(seconds * float64(time.Second)), nil
			}
			d, err := time.ParseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid duration %q: use seconds or a value such as \"30s\"", v)
			}
			return d, nil
		default:
			return data, nil
		}
	}
}
