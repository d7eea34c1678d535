package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir           = "data_dir"
	cfgKeySerializer        = "serializer"
	cfgKeyEndpoint          = "endpoint"
	cfgKeyCreateEmptyObject = "create_empty_object"
	cfgKeyUnique            = "unique"
	cfgKeyImmutable         = "immutable"
	cfgKeyPlural            = "plural"
	cfgKeyTypes             = "types"
	cfgKeyLogLevel          = "log_level"
	cfgKeyLogDevelopment    = "log_development"

	envPrefix = "MOCKSTORE"

	defaultSerializer = "json"
	defaultLogLevel   = "warn"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# mockstore configuration

# Data directory (optional; overridable by --data-dir)
# data_dir:

# Attribute file format: json or yaml
serializer: json

# Prefix of self references, an absolute URL or path
# endpoint: https://api.example.com/v1

# Allow creating records from an empty payload
create_empty_object: false

# Attributes that must be unique within a type
unique: [slug]

# Attributes dropped from update payloads
immutable: [type]

# Extra attributes stored as lists
plural: []

# When non-empty, only these types are served
types: []

log_level: warn
log_development: false
`

// settings is the decoded config.yaml.
type settings struct {
	DataDir           string   `mapstructure:"data_dir"`
	Serializer        string   `mapstructure:"serializer"`
	Endpoint          string   `mapstructure:"endpoint"`
	CreateEmptyObject bool     `mapstructure:"create_empty_object"`
	Unique            []string `mapstructure:"unique"`
	Immutable         []string `mapstructure:"immutable"`
	Plural            []string `mapstructure:"plural"`
	Types             []string `mapstructure:"types"`
	LogLevel          string   `mapstructure:"log_level"`
	LogDevelopment    bool     `mapstructure:"log_development"`
}

// loadConfig reads config.yaml from the config directory using Viper. It
// creates the directory and a default config.yaml on first run. A missing
// config.yaml is not an error. Every key except data_dir can be overridden
// by a MOCKSTORE_<KEY> environment variable; data_dir follows the
// flag > config > env precedence of the paths package.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("%w: ensure config dir: %w", types.ErrWriteFailed, err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("%w: ensure default config: %w", types.ErrWriteFailed, err)
	}

	v := viper.New()
	v.SetDefault(cfgKeySerializer, defaultSerializer)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	for _, key := range []string{
		cfgKeySerializer, cfgKeyEndpoint, cfgKeyCreateEmptyObject, cfgKeyUnique,
		cfgKeyImmutable, cfgKeyPlural, cfgKeyTypes, cfgKeyLogLevel, cfgKeyLogDevelopment,
	} {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("%w: read config: %v", types.ErrInvalidConfig, err)
	}
	return v, nil
}

// readSettings decodes v. An explicitly empty unique or immutable list
// stays empty instead of falling back to the store defaults.
func readSettings(v *viper.Viper) (settings, error) {
	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("%w: decode config: %v", types.ErrInvalidConfig, err)
	}
	if v.IsSet(cfgKeyUnique) && s.Unique == nil {
		s.Unique = []string{}
	}
	if v.IsSet(cfgKeyImmutable) && s.Immutable == nil {
		s.Immutable = []string{}
	}
	return s, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
