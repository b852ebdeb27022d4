package config

import (
	"fmt"
	"strings"

	"pet-registry/internal/domain/credentials"

	"github.com/spf13/viper"
)

type credentialEntry struct {
	Key      string `mapstructure:"key"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type credentialFile struct {
	Credentials []credentialEntry `mapstructure:"credentials"`
}

// LoadCredentials lee la tabla de keys desde un archivo YAML/JSON/TOML
// (el formato sale de la extensión). Path vacío => DefaultTable.
func LoadCredentials(path string) ([]credentials.Credential, error) {
	if strings.TrimSpace(path) == "" {
		return credentials.DefaultTable(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	var f credentialFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("decode credentials file: %w", err)
	}
	if len(f.Credentials) == 0 {
		return nil, fmt.Errorf("credentials file %s: no entries", path)
	}

	seen := make(map[string]struct{}, len(f.Credentials))
	out := make([]credentials.Credential, 0, len(f.Credentials))
	for i, e := range f.Credentials {
		if e.Key == "" || e.Username == "" {
			return nil, fmt.Errorf("credentials file %s: entry %d needs key and username", path, i)
		}
		if _, dup := seen[e.Key]; dup {
			return nil, fmt.Errorf("credentials file %s: duplicate key in entry %d", path, i)
		}
		seen[e.Key] = struct{}{}
		out = append(out, credentials.Credential{Key: e.Key, Username: e.Username, Password: e.Password})
	}
	return out, nil
}
