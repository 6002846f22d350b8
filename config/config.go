package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Log   LogConfigs   `toml:"log"`
	Cache CacheConfigs `toml:"cache"`
}

type LogConfigs struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// CacheConfigs bounds the entity caches. A limit less than or equal to zero
// disables eviction for that cache.
type CacheConfigs struct {
	MessageLimit int `toml:"message_limit"`
	MemberLimit  int `toml:"member_limit"`
}

func Default() Configs {
	return Configs{
		Env: "local",
		Log: LogConfigs{
			Level: "info",
		},
		Cache: CacheConfigs{
			MessageLimit: 100,
		},
	}
}

// Load reads a TOML file on top of the default configs. Keys missing from the
// file keep their default value.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Configs{}, fmt.Errorf("unknown config keys: %v", undecoded)
	}

	return cfg, nil
}
