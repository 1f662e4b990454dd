package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis  `yaml:"redis"`
	Match    Match  `yaml:"match"`
	Events   Events `yaml:"events"`
	Bot      Bot    `yaml:"bot"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"true"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	// Channel receives every match event as JSON.
	Channel   string        `yaml:"channel" env:"REDIS_CHANNEL" env-default:"arbiter:events"`
	ResultTTL time.Duration `yaml:"result-ttl" env:"REDIS_RESULT_TTL" env-default:"24h"`
}

// Match holds the defaults applied to matches that leave options unset.
type Match struct {
	TimeoutMs     int  `yaml:"timeout-ms" env:"MATCH_TIMEOUT_MS" env-default:"5000"`
	BoardSize     int  `yaml:"board-size" env:"MATCH_BOARD_SIZE" env-default:"3"`
	NoTie         bool `yaml:"no-tie" env:"MATCH_NO_TIE" env-default:"false"`
	MaxMarks      int  `yaml:"max-marks" env:"MATCH_MAX_MARKS" env-default:"0"`
	MaxNoTieTurns int  `yaml:"max-no-tie-turns" env:"MATCH_MAX_NO_TIE_TURNS" env-default:"1000"`
}

type Events struct {
	QueueSize int `yaml:"queue-size" env:"EVENTS_QUEUE_SIZE" env-default:"256"`
}

type Bot struct {
	DefaultProtocol string `yaml:"default-protocol" env:"BOT_DEFAULT_PROTOCOL" env-default:"http"`
	DefaultHost     string `yaml:"default-host" env:"BOT_DEFAULT_HOST" env-default:"localhost"`
	MovePath        string `yaml:"move-path" env:"BOT_MOVE_PATH" env-default:"/move"`
}

// Load - reads the yaml file at path with env overrides, or the environment alone when the file is missing.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from env: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
