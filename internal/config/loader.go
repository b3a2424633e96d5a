package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix namespaces environment variables, e.g. SQLMENTOR_LOG_LEVEL or
// SQLMENTOR_SERVER_ADDR (a single underscore separates nested keys from
// the last component, so SERVER_ADDR maps to server.addr).
const EnvPrefix = "SQLMENTOR_"

// Load builds the configuration from defaults, an optional YAML file,
// environment variables, and flags, in ascending precedence. cfgFile and
// flags may be empty/nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
		}
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Only flags that were explicitly set override lower layers.
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// flagKey maps CLI flag names onto config keys. Short flag names bridge
// to their nested homes; everything else converts kebab-case to
// snake_case.
func flagKey(name string) string {
	switch name {
	case "addr":
		return "server.addr"
	case "backend":
		return "exec.backend"
	case "dsn":
		return "exec.dsn"
	case "query-timeout":
		return "exec.query_timeout"
	case "bank":
		return "bank_path"
	case "state":
		return "state_path"
	}
	return strings.ReplaceAll(name, "-", "_")
}

// envKey maps SQLMENTOR_SERVER_ADDR to server.addr and
// SQLMENTOR_LOG_LEVEL to log_level. Known section prefixes become nested
// keys; everything else keeps its underscores.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range []string{"server_", "exec_", "llm_"} {
		if strings.HasPrefix(key, section) {
			return strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(key, section)
		}
	}
	return key
}
