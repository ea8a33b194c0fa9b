package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Backend   BackendConfig   `mapstructure:"backend"`
	Search    SearchConfig    `mapstructure:"search"`
	Synthesis SynthesisConfig `mapstructure:"synthesis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	History   HistoryConfig   `mapstructure:"history"`
}

// BackendConfig holds the connection details for the video intelligence backend
type BackendConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	Token            string `mapstructure:"token"`
	SearchTimeout    int    `mapstructure:"search_timeout"`    // seconds, also covers list/get calls
	SynthesisTimeout int    `mapstructure:"synthesis_timeout"` // seconds, synthesis takes longer
	RetryBackoffMS   int    `mapstructure:"retry_backoff_ms"`
}

type SearchConfig struct {
	MaxResults  int     `mapstructure:"max_results"`
	MinScore    float64 `mapstructure:"min_score"`
	URLTemplate string  `mapstructure:"url_template"` // {video_id} and {start} placeholders
}

type SynthesisConfig struct {
	Tone string `mapstructure:"tone"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type HistoryConfig struct {
	Path string `mapstructure:"path"` // Database path, default ./data/history.db
}

func Load(cfgFile string) *Config {
	// Load .env file if exists (ignore error if not found)
	godotenv.Load()
	godotenv.Load(".env.local")

	v := viper.New()

	setDefaults(v)

	// Replace . with _ for nested config keys
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("CLIPSIGHT")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is ok, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic("Error reading config file: " + err.Error())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("Error unmarshaling config: " + err.Error())
	}

	// A non-positive max would make every search degenerate
	if cfg.Search.MaxResults < 1 {
		cfg.Search.MaxResults = 1
	}
	if cfg.Backend.RetryBackoffMS < 0 {
		cfg.Backend.RetryBackoffMS = 0
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://localhost:3000")
	v.SetDefault("backend.search_timeout", 30)
	v.SetDefault("backend.synthesis_timeout", 60)
	v.SetDefault("backend.retry_backoff_ms", 250)

	v.SetDefault("search.max_results", 10)
	v.SetDefault("search.min_score", 0.0)
	v.SetDefault("search.url_template", "https://youtube.com/watch?v={video_id}&t={start}s")

	v.SetDefault("synthesis.tone", "professional")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("history.path", "./data/history.db")
}
