package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/kelseyhightower/envconfig"
)

// Prefix de las variables de entorno: PETS_PORT, PETS_UPLOAD_DIR, etc.
const Prefix = "PETS"

type Config struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"8000"`

	// Fotos subidas por el alta con foto y por set_photo.
	UploadDir string `envconfig:"UPLOAD_DIR" default:"uploads"`

	// Vacío => tabla por defecto (admin/admin).
	CredentialsFile string `envconfig:"CREDENTIALS_FILE" default:""`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	AppName   string `envconfig:"APP_NAME" default:"pet-registry"`

	MaxRequestBytes int64 `envconfig:"MAX_REQUEST_BYTES" default:"67108864"`
}

// New lee la configuración del entorno.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.UploadDir == "" {
		return fmt.Errorf("upload dir required")
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("invalid max request bytes: %d", c.MaxRequestBytes)
	}
	return nil
}

// Addr devuelve host:port para http.Server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Fields resume la config para el log de arranque (sin secretos).
func (c *Config) Fields() map[string]any {
	return map[string]any{
		"addr":              c.Addr(),
		"upload_dir":        c.UploadDir,
		"credentials_file":  c.CredentialsFile != "",
		"log_level":         c.LogLevel,
		"log_format":        c.LogFormat,
		"max_request_bytes": c.MaxRequestBytes,
	}
}
