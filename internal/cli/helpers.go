package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/mockstore/internal/logging"
	"github.com/mesh-intelligence/mockstore/internal/paths"
	"github.com/mesh-intelligence/mockstore/pkg/flatfile"
	"github.com/mesh-intelligence/mockstore/pkg/serializer"
	"github.com/mesh-intelligence/mockstore/pkg/types"
)

// environment is what open resolved: directories plus decoded settings.
type environment struct {
	ConfigDir string   `json:"config_dir"`
	DataDir   string   `json:"data_dir"`
	Settings  settings `json:"-"`
}

// resolve loads the configuration and makes sure the data directory exists.
func (a *app) resolve() (environment, error) {
	var env environment

	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return env, fmt.Errorf("%w: resolve config dir: %v", types.ErrInvalidConfig, err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return env, err
	}
	s, err := readSettings(v)
	if err != nil {
		return env, err
	}
	dataDir, err := paths.ResolveDataDir(a.dataDir, s.DataDir)
	if err != nil {
		return env, fmt.Errorf("%w: resolve data dir: %v", types.ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return env, fmt.Errorf("%w: create data dir: %v", types.ErrWriteFailed, err)
	}

	env.ConfigDir = configDir
	env.DataDir = dataDir
	env.Settings = s
	return env, nil
}

// open builds the registry once per command invocation. A non-empty types
// list in the config yields a strict registry.
func (a *app) open() (types.Registry, error) {
	if a.registry != nil {
		return a.registry, nil
	}
	env, err := a.resolve()
	if err != nil {
		return nil, err
	}
	s := env.Settings

	ser, err := serializer.ByName(s.Serializer)
	if err != nil {
		return nil, err
	}
	level := s.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	logger, err := logging.New(logging.Config{
		Level:       level,
		Development: s.LogDevelopment,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: logger: %v", types.ErrInvalidConfig, err)
	}

	tmpl := types.Config{
		Root:              env.DataDir,
		Serializer:        ser,
		Endpoint:          s.Endpoint,
		CreateEmptyObject: s.CreateEmptyObject,
		Unique:            s.Unique,
		Immutable:         s.Immutable,
		Plural:            s.Plural,
		Logger:            logger,
	}

	var reg types.Registry
	if len(s.Types) == 0 {
		reg, err = flatfile.NewRegistry(&tmpl)
	} else {
		stores := make([]types.ResourceStore, 0, len(s.Types))
		for _, name := range s.Types {
			cfg := tmpl
			cfg.Type = name
			store, err := flatfile.New(cfg)
			if err != nil {
				return nil, err
			}
			stores = append(stores, store)
		}
		reg, err = flatfile.NewRegistry(nil, stores...)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("registry opened",
		zap.String("data_dir", env.DataDir),
		zap.Strings("types", s.Types),
		zap.String("serializer", ser.Name()))
	a.logger = logger
	a.registry = reg
	return reg, nil
}

// store opens the registry and returns the store for resourceType.
func (a *app) store(resourceType string) (types.ResourceStore, error) {
	reg, err := a.open()
	if err != nil {
		return nil, err
	}
	return reg.Get(resourceType)
}

// parsePayload parses key=value arguments into a record.
func parsePayload(args []string) (types.Record, error) {
	rec := make(types.Record, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", types.ErrInvalidInput, arg)
		}
		v, err := parseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		rec[key] = v
	}
	return rec, nil
}

// parseValue decodes raw as JSON when it is valid JSON and treats it as a
// plain string otherwise, so name=hello and count=3 both work unquoted.
func parseValue(raw string) (types.Value, error) {
	if !json.Valid([]byte(raw)) {
		return types.String(raw), nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return types.String(raw), nil
	}
	if _, isObject := decoded.(map[string]any); isObject {
		return types.Value{}, fmt.Errorf("%w: objects are not supported as values", types.ErrInvalidInput)
	}
	return types.FromAny(decoded)
}

// parseValues folds one or more value arguments into a single value: one
// argument is parsed as is, several become a list.
func parseValues(args []string) (types.Value, error) {
	if len(args) == 1 {
		return parseValue(args[0])
	}
	items := make([]types.Value, 0, len(args))
	for _, raw := range args {
		v, err := parseValue(raw)
		if err != nil {
			return types.Value{}, err
		}
		items = append(items, v)
	}
	return types.List(items...), nil
}

// printJSON writes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
