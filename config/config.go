package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/smartmoney/internal/domain"
)

// Config es la configuración completa del detector.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Books  BooksConfig  `yaml:"books"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// EngineConfig controla el dimensionado de las apuestas.
type EngineConfig struct {
	Bankroll      float64 `yaml:"bankroll"`       // banca en la moneda del usuario
	KellyFraction float64 `yaml:"kelly_fraction"` // fracción del Kelly completo, en (0, 1]
	BatchWorkers  int     `yaml:"batch_workers"`  // 0 = NumCPU
}

// BooksConfig define qué libros son referencia y cuáles se consideran asiáticos.
type BooksConfig struct {
	Reference string   `yaml:"reference"`
	Asian     []string `yaml:"asian"`
}

// ServerConfig controla la API HTTP (modo -serve).
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RatePerSec     float64  `yaml:"rate_per_sec"`
	Burst          int      `yaml:"burst"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Si el YAML no existe se usan los valores por defecto: el archivo es opcional.
// Los valores del entorno sobreescriben los del YAML.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// sin archivo: defaults + entorno
	case err != nil:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	setDefaults(&cfg)

	if err := cfg.EngineDefaults().Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// EngineDefaults devuelve la configuración numérica del motor.
func (c *Config) EngineDefaults() domain.EngineConfig {
	return domain.EngineConfig{
		Bankroll:      c.Engine.Bankroll,
		KellyFraction: c.Engine.KellyFraction,
	}
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("REFERENCE_BOOK"); v != "" {
		cfg.Books.Reference = v
	}
	if v := os.Getenv("ASIAN_BOOKS"); v != "" {
		cfg.Books.Asian = splitList(v)
	}
	if v := os.Getenv("BANKROLL"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("BANKROLL %q: %w", v, err)
		}
		cfg.Engine.Bankroll = f
	}
	if v := os.Getenv("KELLY_FRACTION"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("KELLY_FRACTION %q: %w", v, err)
		}
		cfg.Engine.KellyFraction = f
	}
	return nil
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
// Valores negativos no se corrigen: Validate los rechaza.
func setDefaults(cfg *Config) {
	if cfg.Engine.Bankroll == 0 {
		cfg.Engine.Bankroll = 1000
	}
	if cfg.Engine.KellyFraction == 0 {
		cfg.Engine.KellyFraction = 0.3
	}
	if cfg.Books.Reference == "" {
		cfg.Books.Reference = domain.DefaultReferenceBook
	}
	if len(cfg.Books.Asian) == 0 {
		cfg.Books.Asian = append([]string(nil), domain.DefaultAsianBooks...)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Server.RatePerSec <= 0 {
		cfg.Server.RatePerSec = 10
	}
	if cfg.Server.Burst <= 0 {
		cfg.Server.Burst = 20
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
