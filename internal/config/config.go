package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env-default:"9090"`
	SocketPort        string `yaml:"socket-port" env-default:"9091"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path"`
	JWTSecretKey      string `yaml:"jwt-secret-key"`
	WordListPath      string `yaml:"word-list-path"`
	Game              Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Game struct {
	PauseBudgetSeconds   int `yaml:"pause-budget-seconds" env-default:"30"`
	PauseIntervalSeconds int `yaml:"pause-interval-seconds" env-default:"5"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Game) PauseBudget() time.Duration {
	return time.Duration(that.PauseBudgetSeconds) * time.Second
}

func (that *Game) PauseInterval() time.Duration {
	return time.Duration(that.PauseIntervalSeconds) * time.Second
}
