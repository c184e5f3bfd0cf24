package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/pbessa/jobradar/internal/logger"
)

//go:embed prompt.md
var promptTemplate string

// ErrNoJSONObject is returned when the model response carries no parseable
// JSON object anywhere in its text.
var ErrNoJSONObject = errors.New("no JSON object found in model response")

const previewLogLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Analyzer turns raw resume text into a Profile using a content generator.
type Analyzer struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewAnalyzer(generator contentGenerator, log *zap.Logger) *Analyzer {
	return &Analyzer{generator: generator, logger: log}
}

// Analyze sends the resume text to the model and parses the structured
// profile out of the response. The response may wrap the JSON object in
// prose; the first balanced object found is used.
func (a *Analyzer) Analyze(ctx context.Context, resumeText string) (*Profile, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, errors.New("resume text is empty")
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{RESUME_TEXT}}", resumeText)

	a.logger.Debug("profile extraction request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	response, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate profile: %w", err)
	}

	a.logger.Debug("profile extraction response",
		zap.Int("response_length", utf8.RuneCountInString(response)),
		zap.String("response_preview", logger.Truncate(response, previewLogLength)),
	)

	jsonStr, ok := ExtractJSONObject(response)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoJSONObject, logger.Truncate(response, previewLogLength))
	}

	var data raw
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return nil, fmt.Errorf("parse profile response: %w", err)
	}

	return data.toProfile(), nil
}

// ExtractJSONObject scans text for the first balanced JSON object and
// returns it. Braces inside string literals are ignored, so prose around or
// before the object does not confuse the scan.
func ExtractJSONObject(text string) (string, bool) {
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
