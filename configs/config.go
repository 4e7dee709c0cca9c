package configs

import (
	"context"
	"os"
	"time"

	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Config struct that contains the structure of the config
type Config struct {
	Redis struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Pool int    `yaml:"pool"`
	} `yaml:"REDIS"`
	Bot struct {
		Prefix           string `yaml:"prefix"`
		OkColor          int    `yaml:"ok_color"`
		WarnColor        int    `yaml:"warn_color"`
		ErrorColor       int    `yaml:"error_color"`
		DocumentationURL string `yaml:"documentation_url"`
		OwnerID          string `yaml:"owner_id"`
	} `yaml:"BOT"`
	RolePicker struct {
		ConfigPath string `yaml:"config_path"`
		// ApprovalTimeout is in seconds
		ApprovalTimeout time.Duration `yaml:"approval_timeout"`
		DefaultColor    string        `yaml:"default_color"`
	} `yaml:"ROLE_PICKER"`
	Events struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"EVENTS"`
	CacheSettings struct {
		GuildRoles CacheSetting `yaml:"guild_roles"`
	} `yaml:"CACHE_SETTINGS"`
	Runners struct {
		Reconcile Runner `yaml:"reconcile"`
	} `yaml:"RUNNERS"`
	Commands []Command `yaml:"COMMANDS"`
}

// CacheSetting struct
type CacheSetting struct {
	Base    string `yaml:"base"`
	TTL     string `yaml:"ttl"`
	Enabled bool   `yaml:"enabled"`
}

// Command struct
type Command struct {
	Name        string   `yaml:"name"`
	Long        string   `yaml:"long"`
	Short       string   `yaml:"short"`
	Description string   `yaml:"description"`
	MinArgs     int      `yaml:"min_args"`
	MaxArgs     int      `yaml:"max_args"`
	Usage       []string `yaml:"usage"`
	Examples    []string `yaml:"examples"`
	Enabled     bool     `yaml:"enabled"`
	AdminOnly   bool     `yaml:"admin_only"`
	OwnerOnly   bool     `yaml:"owner_only"`
}

// Runner struct
type Runner struct {
	Frequency time.Duration `yaml:"frequency"`
	Workers   int           `yaml:"workers"`
	Delay     time.Duration `yaml:"delay"`
	Enabled   bool          `yaml:"enabled"`
}

// GetConfig gets the config file and returns a Config struct
func GetConfig(ctx context.Context, env string) *Config {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	configFile := "./configs/conf-" + env + ".yml"
	f, err := os.Open(configFile)

	if err != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", err))
		logger := logging.Logger(ctx)
		logger.Fatal("error_log")
	}

	defer f.Close()

	var config Config
	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&config)

	if err != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", err))
		logger := logging.Logger(ctx)
		logger.Fatal("error_log")
	}

	return &config
}
