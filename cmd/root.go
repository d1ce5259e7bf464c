package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avoronov/talentscout/internal/scoring"
)

const (
	app = "talentscout"
)

type Config struct {
	Search        *SearchConfig    `mapstructure:"search"`
	Scoring       *ScoringConfig   `mapstructure:"scoring"`
	Outreach      *OutreachConfig  `mapstructure:"outreach"`
	Providers     *ProvidersConfig `mapstructure:"providers"`
	Store         *StoreConfig     `mapstructure:"store"`
	ContactedFile string           `mapstructure:"contacted-file"`
}

type SearchConfig struct {
	MaxResults       int           `mapstructure:"max-results"`
	TopSkills        int           `mapstructure:"top-skills"`
	FetchConcurrency int           `mapstructure:"fetch-concurrency"`
	QueryDelay       time.Duration `mapstructure:"query-delay"`
}

type ScoringConfig struct {
	Weights *scoring.Weights `mapstructure:"weights"`
}

type OutreachConfig struct {
	Top          int       `mapstructure:"top"`
	Company      string    `mapstructure:"company"`
	TemplateFile string    `mapstructure:"template-file"`
	AI           *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ProvidersConfig struct {
	Order  []string      `mapstructure:"order"`
	Serper *SerperConfig `mapstructure:"serper"`
	Enrich *EnrichConfig `mapstructure:"enrich"`
	Cache  *CacheConfig  `mapstructure:"cache"`
}

type SerperConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
}

type EnrichConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Host       string `mapstructure:"host"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Addr    string        `mapstructure:"addr"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type StoreConfig struct {
	Type    string `mapstructure:"type"`
	Dir     string `mapstructure:"dir"`
	DSNFile string `mapstructure:"dsn-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentscout is a cli for sourcing LinkedIn candidates from a job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"providers.serper.api-key-file":   "SERPER_API_KEY_FILE",
		"providers.enrich.api-key-file":   "RAPIDAPI_KEY_FILE",
		"outreach.ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"store.dsn-file":                  "POSTGRES_DSN_FILE",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talentscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}

	applyConfigDefaults(config)

	return config, validateConfig(config)
}

func applyConfigDefaults(config *Config) {
	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	if config.Scoring == nil {
		config.Scoring = &ScoringConfig{}
	}
	if config.Scoring.Weights == nil {
		weights := scoring.DefaultWeights()
		config.Scoring.Weights = &weights
	}
	if config.Outreach == nil {
		config.Outreach = &OutreachConfig{}
	}
	if config.Providers == nil {
		config.Providers = &ProvidersConfig{}
	}
	if len(config.Providers.Order) == 0 {
		config.Providers.Order = []string{"serper", "google"}
	}
	if config.Store == nil {
		config.Store = &StoreConfig{}
	}
	if config.Store.Type == "" {
		config.Store.Type = "json"
	}
}

// validateConfig rejects unusable configuration before any external call.
func validateConfig(config *Config) error {
	if err := config.Scoring.Weights.Validate(); err != nil {
		return err
	}

	if config.Search.MaxResults < 0 {
		return fmt.Errorf("search.max-results must not be negative: %d", config.Search.MaxResults)
	}
	if config.Search.FetchConcurrency < 0 {
		return fmt.Errorf("search.fetch-concurrency must not be negative: %d", config.Search.FetchConcurrency)
	}

	for _, name := range config.Providers.Order {
		switch name {
		case "serper", "google":
		default:
			return fmt.Errorf("unknown search provider: %s", name)
		}
	}

	switch config.Store.Type {
	case "json", "postgres", "none":
	default:
		return fmt.Errorf("unknown store type: %s", config.Store.Type)
	}

	if aiCfg := config.Outreach.AI; aiCfg != nil && aiCfg.Enabled {
		if aiCfg.Provider != "" && aiCfg.Provider != "gemini" {
			return fmt.Errorf("unsupported ai provider: %s", aiCfg.Provider)
		}
		if aiCfg.Gemini == nil {
			return fmt.Errorf("gemini configuration is required when outreach ai is enabled")
		}
	}

	return nil
}
