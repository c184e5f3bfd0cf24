package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pbessa/jobradar/internal/job"
	"github.com/pbessa/jobradar/internal/logger"
	"github.com/pbessa/jobradar/internal/pipeline"
	"github.com/pbessa/jobradar/internal/profile"
	"github.com/pbessa/jobradar/internal/report"
	"github.com/pbessa/jobradar/internal/resume"
	"github.com/pbessa/jobradar/internal/secrets"
)

const (
	PromptOpenReport = "Open the report in a browser"
	PromptTopMatches = "Print top matches"
	PromptExit       = "Exit"

	topMatchesCount = 10
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Report is ready",
	Items: []string{PromptOpenReport, PromptTopMatches, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score the collected postings against your resume and build an HTML report",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("resume", "r", "", "path to your resume, PDF or TXT")
	matchCmd.Flags().StringP("output", "o", "report.html", "path for the HTML report")
	matchCmd.Flags().Float64P("min-score", "s", 0, "hide matches scoring below this value, overrides the config file")
	matchCmd.Flags().Bool("open", false, "open the report in a browser without asking")

	matchCmd.MarkFlagRequired("resume")

	viper.BindPFlag("min-score", matchCmd.Flags().Lookup("min-score"))
}

func match(cmd *cobra.Command) {
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

	logger.Info("starting the jobradar match", zap.String("version", version))

	resumePath := cmd.Flag("resume").Value.String()
	text, err := resume.ExtractText(resumePath)
	if err != nil {
		logger.Fatal("reading the resume", zap.Error(err), zap.String("file", resumePath))
	}

	logger.Info("resume loaded",
		zap.String("file", filepath.Base(resumePath)),
		zap.Int("characters", len(text)),
	)

	prof, err := analyzeResume(ctx, config, text, logger)
	if err != nil {
		logger.Fatal("analyzing the resume", zap.Error(err))
	}

	logger.Info("profile extracted",
		zap.String("area", prof.Area),
		zap.String("seniority", string(prof.Seniority)),
		zap.Int("skills", len(prof.Skills)),
	)

	matches, err := pipeline.Match(config.StoreFile, prof, config.MinScore)
	if err != nil {
		logger.Fatal("matching", zap.Error(err))
	}

	logger.Info("matching finished",
		zap.Int("matches", len(matches)),
		zap.Float64("min_score", config.MinScore),
	)

	output := cmd.Flag("output").Value.String()
	if err := report.Render(output, prof, matches); err != nil {
		logger.Fatal("writing the report", zap.Error(err))
	}

	logger.Info("report written", zap.String("file", output))

	if cmd.Flag("open").Value.String() == "true" {
		if err := browser.OpenFile(output); err != nil {
			logger.Warn("opening the report", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, output, matches, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action, output string, matches []*job.Match, logger *zap.Logger) error {
	switch action {
	case PromptOpenReport:
		return browser.OpenFile(output)
	case PromptTopMatches:
		for i, m := range matches {
			if i == topMatchesCount {
				break
			}
			fmt.Printf("%3.0f%%  %s / %s / %s\n",
				m.Score*100, m.Posting.Title, m.Posting.Company, m.Posting.SourceLink,
			)
		}
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func analyzeResume(ctx context.Context, config *Config, text string, logger *zap.Logger) (*profile.Profile, error) {
	var keyFile, model string
	if config.AI != nil && config.AI.Gemini != nil {
		keyFile = config.AI.Gemini.APIKeyFile
		model = config.AI.Gemini.Model
	}
	if keyFile == "" {
		keyFile = viper.GetString("ai.gemini.api-key-file")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: keyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := profile.NewGenerator(ctx, apiKey, model)
	if err != nil {
		return nil, err
	}

	return profile.NewAnalyzer(generator, logger).Analyze(ctx, text)
}
