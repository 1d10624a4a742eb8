package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/wrtgvr/statusboard/internal/domain"
)

// Config is the services file. JSON files are accepted as well since JSON
// is valid YAML.
type Config struct {
	Servers []domain.Service `yaml:"servers"`
}

const (
	envVarConfigPath  = "CONFIG_PATH"
	defaultConfigPath = "./config.yaml"
)

// ConfigPath resolves the services file: -config flag, then CONFIG_PATH,
// then ./config.yaml.
func ConfigPath() string {
	if *flagConfigPath != "" {
		return *flagConfigPath
	}
	if path := os.Getenv(envVarConfigPath); path != "" {
		return path
	}
	return defaultConfigPath
}

// Load reads and validates the services file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadOrDefault is Load with a fallback to the built-in service list when the
// file is missing or invalid.
func LoadOrDefault(path string, log zerolog.Logger) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("using default services")
		return Default()
	}
	log.Info().Str("path", path).Int("services", len(cfg.Servers)).Msg("config loaded")
	return cfg
}

// Validate checks every service and rejects duplicate ids.
// It does not mutate cfg.
func Validate(cfg *Config) error {
	seen := make(map[string]struct{}, len(cfg.Servers))
	for i := range cfg.Servers {
		svc := &cfg.Servers[i]
		if err := svc.Validate(); err != nil {
			return fmt.Errorf("servers[%d]: %w", i, err)
		}
		if _, ok := seen[svc.ID]; ok {
			return fmt.Errorf("servers[%d]: duplicate serviceId %q", i, svc.ID)
		}
		seen[svc.ID] = struct{}{}
	}
	return nil
}

func Default() *Config {
	return &Config{
		Servers: []domain.Service{
			{
				ID:       "dc_depops_sp",
				Name:     "DevOps та Kubernetes 3.0 Status Page",
				Address:  "34.116.191.131",
				Port:     80,
				Protocol: domain.ProtocolHTTP,
			},
			{
				ID:       "google",
				Name:     "Google",
				Address:  "google.com",
				Port:     80,
				Protocol: domain.ProtocolHTTP,
			},
			{
				ID:       "olekluk",
				Name:     "OlekLUk",
				Address:  "34.133.93.117",
				Port:     80,
				Protocol: domain.ProtocolHTTP,
			},
		},
	}
}
