package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/avoronov/talentscout/internal/ai/gemini"
	"github.com/avoronov/talentscout/internal/linkedin"
	"github.com/avoronov/talentscout/internal/logger"
	"github.com/avoronov/talentscout/internal/outreach"
	"github.com/avoronov/talentscout/internal/scoring"
	"github.com/avoronov/talentscout/internal/secrets"
	"github.com/avoronov/talentscout/internal/sourcing"
	"github.com/avoronov/talentscout/internal/store"
)

const (
	PromptYes              = "Yes"
	PromptNo               = "No"
	PromptReportByScore    = "Report by score"
	PromptCandidatesToFile = "Dump candidates to file"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptYes, PromptNo, PromptReportByScore, PromptCandidatesToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the talentscout sourcing pipeline",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("job-file", "f", "", "file with the job description text (required)")
	runCmd.Flags().Int("max", 0, "maximum number of candidates to collect from search")
	runCmd.Flags().Int("top", 0, "number of top-ranked candidates to compose messages for")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before saving the run")
	runCmd.Flags().StringP("contacted-file", "e", "", "file with already contacted candidates. Default is unset.")
	runCmd.Flags().StringP("output", "o", "", "directory for run files when the json store is used")

	runCmd.MarkFlagRequired("job-file") //nolint:errcheck

	viper.BindPFlag("contacted-file", runCmd.Flags().Lookup("contacted-file"))
	viper.BindPFlag("store.dir", runCmd.Flags().Lookup("output"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the talentscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	jobFile := cmd.Flag("job-file").Value.String()
	jobText, err := os.ReadFile(jobFile)
	if err != nil {
		logger.Fatal("reading the job description file", zap.Error(err))
	}

	pipeline, err := preparePipeline(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("preparing the pipeline", zap.Error(err))
	}

	result, err := pipeline.Run(ctx, string(jobText))
	if err != nil {
		logger.Fatal("running the pipeline", zap.Error(err))
	}

	if len(result.Candidates) == 0 {
		logger.Info("exiting", zap.Strings("reasons", result.Reasons))
		return
	}

	logger.Info("pipeline finished",
		zap.String("run_id", result.RunID),
		zap.Int("profiles_found", result.Stats.ProfilesFound),
		zap.Int("candidates", result.Stats.ProfilesScored),
		zap.Int("messages", result.Stats.MessagesComposed),
		zap.Duration("duration", result.Stats.Duration),
	)

	runStore, err := prepareStore(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the store", zap.Error(err))
	}

	action := PromptYes
	for {
		if cmd.Flag("auto-approve").Value.String() == "false" {
			var err error
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(ctx, action, runStore, logger, config, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, runStore sourcing.Store, logger *zap.Logger, config *Config, result *sourcing.Result) error {
	switch action {
	case PromptYes:
		return save(ctx, runStore, logger, config, result)
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByScore:
		pretty, _ := json.MarshalIndent(scoring.Report(result.Candidates), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", len(result.Candidates)))
		return nil
	case PromptCandidatesToFile:
		profiles := make([]*linkedin.Profile, 0, len(result.Candidates))
		for _, candidate := range result.Candidates {
			profiles = append(profiles, candidate.Profile)
		}

		filename, err := (&linkedin.Candidates{Items: profiles}).DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// save persists the run and marks the messaged candidates as contacted.
func save(ctx context.Context, runStore sourcing.Store, logger *zap.Logger, config *Config, result *sourcing.Result) error {
	if runStore != nil {
		if err := runStore.Save(ctx, result); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Info("run saved", zap.String("store", runStore.Name()))
	}

	contactedFile := viper.GetString("contacted-file")
	if contactedFile == "" {
		contactedFile = config.ContactedFile
	}

	if contactedFile != "" && len(result.Messages) > 0 {
		contacted, err := linkedin.ContactedFromFile(contactedFile)
		if err != nil {
			return fmt.Errorf("load contacted file: %w", err)
		}

		profiles := make([]*linkedin.Profile, 0, len(result.Messages))
		for _, msg := range result.Messages {
			for _, candidate := range result.Candidates {
				if candidate.Profile.LinkedInURL == msg.CandidateURL {
					profiles = append(profiles, candidate.Profile)
					break
				}
			}
		}

		contacted.AppendProfiles(profiles, time.Now())
		if err := contacted.ToFile(contactedFile); err != nil {
			return fmt.Errorf("append to contacted file: %w", err)
		}

		logger.Info("appended to contacted file",
			zap.String("filename", contactedFile),
			zap.Int("count", len(profiles)),
		)
	}

	return errExit
}

func preparePipeline(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) (*sourcing.Pipeline, error) {
	providers, err := prepareProviders(config, logger)
	if err != nil {
		return nil, err
	}

	source, err := prepareSource(config, logger)
	if err != nil {
		return nil, err
	}

	composer, err := prepareComposer(ctx, config, logger)
	if err != nil {
		return nil, err
	}

	cfg := sourcing.Config{
		MaxResults:       config.Search.MaxResults,
		TopSkills:        config.Search.TopSkills,
		FetchConcurrency: config.Search.FetchConcurrency,
		QueryDelay:       config.Search.QueryDelay,
		TopMessages:      config.Outreach.Top,
		ContactedFile:    viper.GetString("contacted-file"),
		Weights:          *config.Scoring.Weights,
	}
	if cfg.ContactedFile == "" {
		cfg.ContactedFile = config.ContactedFile
	}

	if v, err := cmd.Flags().GetInt("max"); err == nil && v > 0 {
		cfg.MaxResults = v
	}
	if v, err := cmd.Flags().GetInt("top"); err == nil && v > 0 {
		cfg.TopMessages = v
	}

	return sourcing.New(cfg, sourcing.Deps{
		Providers: providers,
		Source:    source,
		Composer:  composer,
		Logger:    logger,
	})
}

// prepareProviders builds search providers in the configured order. Serper
// needs an api key; a missing key skips the provider with a warning instead
// of failing the run when google can still serve.
func prepareProviders(config *Config, logger *zap.Logger) ([]linkedin.SearchProvider, error) {
	var providers []linkedin.SearchProvider

	for _, name := range config.Providers.Order {
		switch name {
		case "serper":
			keyFile := viper.GetString("providers.serper.api-key-file")
			if config.Providers.Serper != nil && config.Providers.Serper.APIKeyFile != "" {
				keyFile = config.Providers.Serper.APIKeyFile
			}

			apiKey, err := secrets.Load(secrets.Source{
				Name: "serper api key",
				File: keyFile,
			})
			if err != nil {
				logger.Warn("skipping serper provider", zap.Error(err))
				continue
			}

			providers = append(providers, linkedin.NewSerperClient(apiKey, logger))
		case "google":
			providers = append(providers, linkedin.NewGoogleClient(logger))
		}
	}

	if len(providers) == 0 {
		return nil, errors.New("no usable search provider configured")
	}

	return providers, nil
}

// prepareSource composes the profile source chain: the enrichment API when a
// key is configured, then the public page scraper, then the slug fallback.
func prepareSource(config *Config, logger *zap.Logger) (linkedin.ProfileSource, error) {
	var sources []linkedin.ProfileSource

	enrichKeyFile := viper.GetString("providers.enrich.api-key-file")
	host := ""
	if config.Providers.Enrich != nil {
		if config.Providers.Enrich.APIKeyFile != "" {
			enrichKeyFile = config.Providers.Enrich.APIKeyFile
		}
		host = config.Providers.Enrich.Host
	}

	if enrichKeyFile != "" {
		apiKey, err := secrets.Load(secrets.Source{
			Name: "rapidapi key",
			File: enrichKeyFile,
		})
		if err != nil {
			logger.Warn("skipping profile enrichment api", zap.Error(err))
		} else {
			sources = append(sources, linkedin.NewEnrichClient(apiKey, host, logger))
		}
	}

	sources = append(sources, linkedin.NewHTMLSource(logger), linkedin.NewSlugSource())

	var source linkedin.ProfileSource = linkedin.NewChainSource(logger, sources...)

	if cache := config.Providers.Cache; cache != nil && cache.Enabled {
		addr := cache.Addr
		if addr == "" {
			addr = "localhost:6379"
		}

		rdb := redis.NewClient(&redis.Options{Addr: addr})
		source = linkedin.NewCachedSource(source, rdb, cache.TTL, logger)
	}

	return source, nil
}

func prepareComposer(ctx context.Context, config *Config, logger *zap.Logger) (*outreach.Generator, error) {
	template := ""
	if config.Outreach.TemplateFile != "" {
		body, err := os.ReadFile(config.Outreach.TemplateFile)
		if err != nil {
			return nil, fmt.Errorf("reading the outreach template: %w", err)
		}
		template = string(body)
	}

	composer := outreach.NewComposer(template, config.Outreach.Company)

	var writer outreach.MessageWriter
	if aiCfg := config.Outreach.AI; aiCfg != nil && aiCfg.Enabled {
		w, err := newAIWriter(ctx, aiCfg, logger)
		if err != nil {
			logger.Warn("skipping ai outreach", zap.Error(err))
		} else {
			writer = w
		}
	}

	return outreach.NewGenerator(composer, writer, logger), nil
}

func newAIWriter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (*gemini.Writer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	keyFile := viper.GetString("outreach.ai.gemini.api-key-file")
	if cfg.Gemini.APIKeyFile != "" {
		keyFile = cfg.Gemini.APIKeyFile
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: keyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set outreach.ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, logger)
	if err != nil {
		return nil, err
	}

	return gemini.NewWriter(generator, logger, cfg.Gemini.MaxLogLength), nil
}

func prepareStore(ctx context.Context, config *Config, logger *zap.Logger) (sourcing.Store, error) {
	switch config.Store.Type {
	case "none":
		return nil, nil
	case "json":
		return store.NewJSONStore(config.Store.Dir, logger)
	case "postgres":
		dsn, err := secrets.Load(secrets.Source{
			Name: "postgres dsn",
			File: config.Store.DSNFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set store.dsn-file or POSTGRES_DSN_FILE)", err)
		}
		return store.NewPostgresStore(ctx, dsn, logger)
	default:
		return nil, fmt.Errorf("unknown store type: %s", config.Store.Type)
	}
}
