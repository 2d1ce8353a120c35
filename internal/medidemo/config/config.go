package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. MEDIDEMO_SERVER_PORT.
const EnvPrefix = "MEDIDEMO"

type LoggingCfg struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	RunLog string `mapstructure:"run_log"`
}

type DrugSourceCfg struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type CatalogCfg struct {
	File       string        `mapstructure:"file"`
	DrugSource DrugSourceCfg `mapstructure:"drug_source"`
}

type ServerCfg struct {
	Port            string   `mapstructure:"port"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	SimulateLatency bool     `mapstructure:"simulate_latency"`
	MaxBodyBytes    int64    `mapstructure:"max_body_bytes"`
}

// LatencyCfg holds the artificial delays applied when simulate_latency is on.
type LatencyCfg struct {
	Symptoms  time.Duration `mapstructure:"symptoms"`
	BMI       time.Duration `mapstructure:"bmi"`
	HeartRate time.Duration `mapstructure:"heart_rate"`
	Drug      time.Duration `mapstructure:"drug"`
}

type OutputCfg struct {
	RejectFile string `mapstructure:"reject_file"`
}

type Config struct {
	Version string     `mapstructure:"version"`
	Catalog CatalogCfg `mapstructure:"catalog"`
	Server  ServerCfg  `mapstructure:"server"`
	Latency LatencyCfg `mapstructure:"latency"`
	Output  OutputCfg  `mapstructure:"output"`
	Logging LoggingCfg `mapstructure:"logging"`
}

var cfg *Config

// Load populates global config from a viper instance
func Load(v *viper.Viper) error {
	// set defaults
	v.SetDefault("version", "0.1")
	v.SetDefault("catalog.file", "")
	v.SetDefault("catalog.drug_source.driver", "")
	v.SetDefault("catalog.drug_source.dsn", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.simulate_latency", false)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("latency.symptoms", "2s")
	v.SetDefault("latency.bmi", "1500ms")
	v.SetDefault("latency.heart_rate", "1500ms")
	v.SetDefault("latency.drug", "2s")
	v.SetDefault("output.reject_file", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.run_log", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = &c
	return nil
}

func (c *Config) validate() error {
	switch c.Catalog.DrugSource.Driver {
	case "":
	case "postgres", "mysql":
		if c.Catalog.DrugSource.DSN == "" {
			return fmt.Errorf("catalog.drug_source.dsn is required when driver is %q", c.Catalog.DrugSource.Driver)
		}
	default:
		return fmt.Errorf("unsupported catalog.drug_source.driver %q (want postgres or mysql)", c.Catalog.DrugSource.Driver)
	}

	for name, d := range map[string]time.Duration{
		"latency.symptoms":   c.Latency.Symptoms,
		"latency.bmi":        c.Latency.BMI,
		"latency.heart_rate": c.Latency.HeartRate,
		"latency.drug":       c.Latency.Drug,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	return nil
}

func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg
}
