package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pbessa/jobradar/internal/aggregate"
	"github.com/pbessa/jobradar/internal/logger"
	"github.com/pbessa/jobradar/internal/pipeline"
	"github.com/pbessa/jobradar/internal/secrets"
	"github.com/pbessa/jobradar/internal/source"
	"github.com/pbessa/jobradar/internal/source/adzuna"
	"github.com/pbessa/jobradar/internal/source/careers"
	"github.com/pbessa/jobradar/internal/source/remoteok"
	"github.com/pbessa/jobradar/internal/source/rssfeeds"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Collect job postings from every configured source into the local store",
	Run: func(cmd *cobra.Command, _ []string) {
		crawl(cmd)
	},
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().StringSliceP("keywords", "k", nil, "keywords to search for, overrides the config file")
	crawlCmd.Flags().IntP("max-results", "m", 0, "maximum postings per source, 0 means the built-in default of 50")

	viper.BindPFlag("keywords", crawlCmd.Flags().Lookup("keywords"))
	viper.BindPFlag("max-results-per-source", crawlCmd.Flags().Lookup("max-results"))
}

func crawl(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync() //nolint:errcheck // flushing stdout on exit

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jobradar crawl", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	sources, err := buildSources(config, logger)
	if err != nil {
		logger.Fatal("building sources", zap.Error(err))
	}
	if len(sources) == 0 {
		logger.Fatal("no sources enabled",
			zap.String("hint", "check the 'sources' key in the configuration file"),
		)
	}

	result, err := pipeline.Crawl(ctx, logger, aggregate.New(logger, sources...), config.StoreFile, source.Query{
		Keywords:   config.Keywords,
		MaxResults: config.MaxResultsPerSource,
	})
	if err != nil {
		logger.Fatal("crawling", zap.Error(err))
	}

	for _, status := range result.Statuses {
		if status.Err != nil {
			logger.Warn("source failed",
				zap.String("source", status.Source),
				zap.Error(status.Err),
			)
			continue
		}
		logger.Info("source finished",
			zap.String("source", status.Source),
			zap.Int("count", status.Count),
			zap.Duration("duration", status.Duration),
		)
	}

	logger.Info("store updated",
		zap.String("file", config.StoreFile),
		zap.Int("new", result.New),
		zap.Int("total", result.Total),
	)
}

// buildSources assembles the source clients named by the config. An empty
// sources list enables everything that has enough configuration to run.
func buildSources(config *Config, logger *zap.Logger) ([]source.Source, error) {
	enabled := func(name string) bool {
		if len(config.Sources) == 0 {
			return true
		}
		for _, s := range config.Sources {
			if s == name {
				return true
			}
		}
		return false
	}

	var sources []source.Source

	if enabled("remoteok") {
		sources = append(sources, remoteok.New(logger, config.UserAgent))
	}

	if enabled("adzuna") {
		client, err := buildAdzuna(config, logger)
		if err != nil {
			return nil, err
		}
		if client != nil {
			sources = append(sources, client)
		}
	}

	if enabled("rssfeeds") {
		feeds := rssfeeds.DefaultFeeds
		if len(config.Feeds) > 0 {
			feeds = make([]rssfeeds.Feed, 0, len(config.Feeds))
			for _, f := range config.Feeds {
				feeds = append(feeds, rssfeeds.Feed{Name: f.Name, URL: f.URL})
			}
		}
		sources = append(sources, rssfeeds.New(logger, config.UserAgent, feeds))
	}

	if enabled("careers") && len(config.Companies) > 0 {
		companies := make([]careers.Company, 0, len(config.Companies))
		for _, c := range config.Companies {
			companies = append(companies, careers.Company{
				Name:       c.Name,
				URL:        c.URL,
				CareersURL: c.CareersURL,
			})
		}
		sources = append(sources, careers.New(logger, config.UserAgent, companies))
	}

	return sources, nil
}

// buildAdzuna returns nil without error when credentials are not configured
// and the source was not explicitly requested.
func buildAdzuna(config *Config, logger *zap.Logger) (source.Source, error) {
	explicit := false
	for _, s := range config.Sources {
		if s == "adzuna" {
			explicit = true
		}
	}

	var idFile, keyFile string
	if config.Adzuna != nil {
		idFile = config.Adzuna.AppIDFile
		keyFile = config.Adzuna.AppKeyFile
	}

	appID, err := secrets.Load(secrets.Source{Name: "adzuna app id", File: idFile, Env: "ADZUNA_APP_ID"})
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("adzuna requested but not configured: %w", err)
		}
		logger.Debug("skipping adzuna", zap.Error(err))
		return nil, nil
	}

	appKey, err := secrets.Load(secrets.Source{Name: "adzuna app key", File: keyFile, Env: "ADZUNA_APP_KEY"})
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("adzuna requested but not configured: %w", err)
		}
		logger.Debug("skipping adzuna", zap.Error(err))
		return nil, nil
	}

	return adzuna.New(logger, config.UserAgent, appID, appKey), nil
}
