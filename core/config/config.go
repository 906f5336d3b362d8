package config

import (
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/infoblox"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/logger"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/server"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/feature/zonesync"
)

// Config holds all configuration for the application, divided into partial
// configurations per concern.
type Config struct {
	// Infoblox holds the Universal DDI API client settings.
	Infoblox infoblox.Config `mapstructure:"infoblox"`
	// DNS holds the zone and view pair to synchronize.
	DNS zonesync.Config `mapstructure:"dns"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Server holds configuration for the HTTP service mode.
	Server server.Config `mapstructure:"server"`
}

// LoadConfig loads configuration from environment variables and a .env file.
// Nested keys map to underscore-separated environment variables, so
// infoblox.api_token is INFOBLOX_API_TOKEN and dns.view_source is
// DNS_VIEW_SOURCE.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default
// values in Viper based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
