package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env       string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig     `yaml:"http"`
	Postgres  PostgresConfig `yaml:"postgres"`
	StaticDir string         `yaml:"static_dir" env:"STATIC_DIR" env-default:"./public"`
	Seed      bool           `yaml:"seed" env:"SEED"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST"`
	Port            int           `yaml:"port" env:"NODE_LOCAL_PORT" env-default:"6868"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type PostgresConfig struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"virtual_gallery"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	MinConns int32  `yaml:"min_conns" env:"DB_POOL_MIN"`
	MaxConns int32  `yaml:"max_conns" env:"DB_POOL_MAX" env-default:"5"`
}

// DSN builds a postgres:// connection string understood by pgxpool.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     p.Host + ":" + strconv.Itoa(p.Port),
		Path:     "/" + p.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}

	return u.String()
}

// MustLoad reads the YAML file passed with --config or CONFIG_PATH.
// Without a path the configuration comes from the environment (and an optional .env file).
func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		return MustLoadEnv()
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err)
	}

	return cfg
}

func LoadPath(configPath string) (*Config, error) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	cfg := defaults()

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

func MustLoadEnv() *Config {
	cfg, err := LoadEnv()
	if err != nil {
		panic(err)
	}

	return cfg
}

func LoadEnv() (*Config, error) {
	// a missing .env is fine, system environment is used then
	_ = godotenv.Load()

	cfg := defaults()

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read config from env: %w", err)
	}

	return &cfg, nil
}

// defaults holds values that cleanenv's env-default cannot express: it only
// fills zero values, so a default of true would override an explicit false.
func defaults() Config {
	return Config{Seed: true}
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
