package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"

	jobDomain "github.com/okuznetsov/tgarchiver/internal/modules/job/domain"
	"github.com/okuznetsov/tgarchiver/internal/shared/errors"
)

//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

type Config struct {
	APIID              int                  `koanf:"api_id"`
	APIHash            string               `koanf:"api_hash"`
	PhoneNumber        string               `koanf:"phone_number"`
	SessionFile        string               `koanf:"session_file"`
	VideosDir          string               `koanf:"videos_dir"`
	HTTPPort           string               `koanf:"http_port"`
	ThrottleMinMinutes int                  `koanf:"throttle_min_minutes"`
	ThrottleMaxMinutes int                  `koanf:"throttle_max_minutes"`
	SlotPolicy         jobDomain.SlotPolicy `koanf:"slot_policy"`
	QueueSize          int                  `koanf:"queue_size"`
	AppEnv             AppEnv               `koanf:"app_env"`
}

// Load reads configuration from the first existing config file plus the
// environment. Environment variables override file values.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	// Use lo.Find to find the first existing config file
	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	// Convert API_HASH -> api_hash
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	setDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Enums may arrive as plain strings from env vars
	if policyStr := k.String("slot_policy"); policyStr != "" {
		policy, err := jobDomain.ParseSlotPolicy(policyStr)
		if err != nil {
			return nil, oops.With("slot_policy", policyStr).Wrap(err)
		}
		cfg.SlotPolicy = policy
	}
	if appEnvStr := k.String("app_env"); appEnvStr != "" {
		if env, err := ParseAppEnv(appEnvStr); err == nil {
			cfg.AppEnv = env
		} else {
			cfg.AppEnv = AppEnvProduction
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(k *koanf.Koanf) {
	if !k.Exists("session_file") {
		k.Set("session_file", "./session/archiver.session")
	}
	if !k.Exists("videos_dir") {
		k.Set("videos_dir", "./videos")
	}
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("throttle_min_minutes") {
		k.Set("throttle_min_minutes", 5)
	}
	if !k.Exists("throttle_max_minutes") {
		k.Set("throttle_max_minutes", 10)
	}
	if !k.Exists("slot_policy") {
		k.Set("slot_policy", jobDomain.SlotPolicyReject.String())
	}
	if !k.Exists("queue_size") {
		k.Set("queue_size", 4)
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.APIID <= 0 || c.APIHash == "" {
		return errors.ErrMissingAPICredentials
	}
	if c.PhoneNumber == "" {
		return errors.ErrMissingPhoneNumber
	}
	if c.ThrottleMinMinutes <= 0 || c.ThrottleMinMinutes > c.ThrottleMaxMinutes {
		return errors.ErrInvalidThrottleRange
	}
	if !c.SlotPolicy.IsValid() {
		return oops.Errorf("invalid slot_policy: %s", c.SlotPolicy)
	}
	if c.SlotPolicy == jobDomain.SlotPolicyQueue && c.QueueSize <= 0 {
		return oops.Errorf("queue_size must be positive when slot_policy is queue")
	}
	return nil
}
