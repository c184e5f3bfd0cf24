package cmd

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobradar"

	defaultStoreFile = "jobs.json"
	defaultMinScore  = 0.5
	defaultUserAgent = app + "/1.0"
)

type Config struct {
	Keywords            []string `mapstructure:"keywords"`
	MaxResultsPerSource int      `mapstructure:"max-results-per-source"`
	MinScore            float64  `mapstructure:"min-score"`
	StoreFile           string   `mapstructure:"store-file"`
	UserAgent           string   `mapstructure:"user-agent"`
	Sources             []string `mapstructure:"sources"`
	Adzuna              *struct {
		AppIDFile  string `mapstructure:"app-id-file"`
		AppKeyFile string `mapstructure:"app-key-file"`
	} `mapstructure:"adzuna"`
	Feeds []struct {
		Name string `mapstructure:"name"`
		URL  string `mapstructure:"url"`
	} `mapstructure:"feeds"`
	Companies []struct {
		Name       string `mapstructure:"name"`
		URL        string `mapstructure:"url"`
		CareersURL string `mapstructure:"careers-url"`
	} `mapstructure:"companies"`
	AI *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobradar collects job postings from multiple sources and matches them against your resume",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobradar.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("store-file", defaultStoreFile, "path to the collected jobs store")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("store-file", rootCmd.PersistentFlags().Lookup("store-file"))

	viper.SetDefault("min-score", defaultMinScore)
	viper.SetDefault("user-agent", defaultUserAgent)
}

func initConfig() {
	// Secrets can live in a local .env file. A missing file is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional since every key has a default or a flag,
	// but a present yet unparsable file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.StoreFile == "" {
		config.StoreFile = viper.GetString("store-file")
	}
	if config.UserAgent == "" {
		config.UserAgent = viper.GetString("user-agent")
	}
	if config.MinScore == 0 {
		config.MinScore = viper.GetFloat64("min-score")
	}

	return config, nil
}
