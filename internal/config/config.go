// config загружает конфигурацию pokedex-service из YAML и переменных окружения (cleanenv).
//
// Источник выбирается так: явный путь (--config) -> CONFIG_PATH -> ./local.yaml -> только ENV.
// Переменные окружения всегда накладываются поверх файла.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// localConfigFile - файл, который подхватывается из рабочей директории без флагов.
const localConfigFile = "local.yaml"

type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	GRPC     GRPCConfig    `yaml:"grpc"`
	DB       DBConfig      `yaml:"db"`
	Limits   LimitsConfig  `yaml:"limits"`
	Fetch    FetchConfig   `yaml:"fetch"`
	Seed     SeedConfig    `yaml:"seed"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	Health   HealthConfig  `yaml:"health"`
}

// HTTPConfig - REST API, /livez, /healthz и /metrics на одном порту.
type HTTPConfig struct {
	Host     string `yaml:"host"      env:"HTTP_HOST"      env-default:"0.0.0.0"`
	Port     string `yaml:"port"      env:"HTTP_PORT"      env-default:"8080"`
	BasePath string `yaml:"base_path" env:"HTTP_BASE_PATH" env-default:"/api/v2"`
}

func (c HTTPConfig) Addr() string { return net.JoinHostPort(c.Host, c.Port) }

// GRPCConfig - порт стандартного grpc.health.v1.Health.
type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50055"`
}

func (c GRPCConfig) Addr() string { return net.JoinHostPort(c.Host, c.Port) }

// DBConfig - MongoDB; имя базы берётся из пути URI (по умолчанию pokedex).
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// LimitsConfig - размер страницы ListPokemon.
// Default обязателен: без него сервис не стартует.
type LimitsConfig struct {
	Default int `yaml:"default" env:"DEFAULT_LIMIT" env-required:"true"`
	Max     int `yaml:"max"     env:"MAX_LIMIT"     env-default:"1000"`
}

// FetchConfig - HTTP-клиент внешнего API. RPS <= 0 снимает ограничение.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"    env:"FETCH_TIMEOUT"    env-default:"15s"`
	RPS       float64       `yaml:"rps"        env:"FETCH_RPS"        env-default:"5"`
	UserAgent string        `yaml:"user_agent" env:"FETCH_USER_AGENT" env-default:"pokedex-service/1.0"`
}

// SeedConfig - откуда и какими страницами наполняется каталог.
type SeedConfig struct {
	SourceURL string `yaml:"source_url" env:"SEED_SOURCE_URL" env-default:"https://pokeapi.co/api/v2/pokemon"`
	PageSize  int    `yaml:"page_size"  env:"SEED_PAGE_SIZE"  env-default:"200"`
	// MaxPages ограничивает следование по next.
	MaxPages int `yaml:"max_pages" env:"SEED_MAX_PAGES" env-default:"50"`
}

type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
	Seed    time.Duration `yaml:"seed"    env:"SEED_TIMEOUT"    env-default:"2m"`
}

// HealthConfig - период пинга хранилища для gRPC health.
type HealthConfig struct {
	Interval time.Duration `yaml:"interval" env:"HEALTH_INTERVAL" env-default:"10s"`
}

// MustLoad - Load с panic при ошибке; для main.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load читает конфигурацию из выбранного источника и проверяет её.
func Load(path string) (*Config, error) {
	var cfg Config

	src, err := sourcePath(path)
	if err != nil {
		return nil, err
	}

	if src != "" {
		if err := cleanenv.ReadConfig(src, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", src, err)
		}
	}

	// ReadConfig уже учитывает ENV, но повторное чтение держит приоритет ENV
	// одинаковым для всех веток, включая "только ENV".
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		if src == "" {
			return nil, fmt.Errorf("config: no --config, CONFIG_PATH or %s; env: %w", localConfigFile, err)
		}
		return nil, fmt.Errorf("config: overlay env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

// sourcePath возвращает файл конфигурации или "" для режима "только ENV".
// Явно указанный файл (флагом или CONFIG_PATH) обязан существовать.
func sourcePath(explicit string) (string, error) {
	for _, p := range []string{explicit, os.Getenv("CONFIG_PATH")} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("config: file %q: %w", p, err)
		}
		return p, nil
	}

	if _, err := os.Stat(localConfigFile); err == nil {
		return localConfigFile, nil
	}

	return "", nil
}

func (c *Config) validate() error {
	var errs []error

	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	check(c.DB.URL != "", "db.url is required")
	check(c.Limits.Default > 0, "limits.default must be > 0")
	check(c.Limits.Max > 0, "limits.max must be > 0")
	check(c.Limits.Default <= c.Limits.Max, "limits.default must be <= limits.max")

	u, err := url.Parse(c.Seed.SourceURL)
	check(err == nil && u.Scheme != "" && u.Host != "", "seed.source_url must be an absolute url")

	check(c.Seed.PageSize > 0, "seed.page_size must be > 0")
	check(c.Seed.MaxPages > 0, "seed.max_pages must be > 0")
	check(c.Fetch.Timeout > 0, "fetch.timeout must be > 0")
	check(c.Fetch.RPS >= 0, "fetch.rps must be >= 0")

	return errors.Join(errs...)
}
