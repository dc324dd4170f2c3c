package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	WSPath     string        `mapstructure:"ws_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	PongWait   time.Duration `mapstructure:"pong_wait"`
	WriteWait  time.Duration `mapstructure:"write_wait"`
	SendBuffer int           `mapstructure:"send_buffer"`

	Secret         string `mapstructure:"secret"`
	SessionName    string `mapstructure:"session_name"`
	SessionUserKey string `mapstructure:"session_user_key"`

	PresenceInterval   time.Duration `mapstructure:"presence_interval"`
	BackpressurePolicy string        `mapstructure:"backpressure_policy"`
	SignalRateLimit    int           `mapstructure:"signal_rate_limit"`
	SignalRateWindow   time.Duration `mapstructure:"signal_rate_window"`

	LogLevel string `mapstructure:"log_level"`

	Database   DatabaseConfig `mapstructure:"database"`
	ICEServers []ICEServer    `mapstructure:"ice_servers"`

	// File is the config file actually read, empty when running on defaults.
	File string `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type ICEServer struct {
	URLs       []string `mapstructure:"urls"`
	Username   string   `mapstructure:"username"`
	Credential string   `mapstructure:"credential"`
}

const envPrefix = "CHATHUB"

// Path returns config/config.<CONFIG_ENV>.yaml, CONFIG_ENV defaulting to dev.
func Path() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return fmt.Sprintf("config/config.%s.yaml", env)
}

func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads fileName on top of defaults. A missing file is not an error;
// a broken one is.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	loaded := ""
	if _, err := os.Stat(fileName); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", fileName, err)
	} else {
		loaded = fileName
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.File = loaded
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("ws_path", cfg.WSPath).Msg("config ready")
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("ws_path", "/ws")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("write_wait", "5s")
	v.SetDefault("send_buffer", 32)
	v.SetDefault("secret", "")
	v.SetDefault("session_name", "connect.sid")
	v.SetDefault("session_user_key", "user_id")
	v.SetDefault("presence_interval", "5s")
	v.SetDefault("backpressure_policy", "drop")
	v.SetDefault("signal_rate_limit", 0)
	v.SetDefault("signal_rate_window", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("database.path", "chathub.db")
	v.SetDefault("ice_servers", []map[string]any{
		{"urls": []string{"stun:stun.l.google.com:19302"}},
	})
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if !strings.HasPrefix(c.WSPath, "/") {
		return fmt.Errorf("config: ws_path %q must start with /", c.WSPath)
	}
	if c.PingPeriod >= c.PongWait {
		return fmt.Errorf("config: ping_period %s must be shorter than pong_wait %s", c.PingPeriod, c.PongWait)
	}
	if c.SendBuffer <= 0 {
		return fmt.Errorf("config: send_buffer must be positive")
	}
	if c.PresenceInterval <= 0 {
		return fmt.Errorf("config: presence_interval must be positive")
	}
	if c.Secret == "" && c.Mode == "release" {
		return fmt.Errorf("config: secret is required in release mode")
	}
	return nil
}
