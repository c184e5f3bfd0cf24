// Package report renders ranked job matches into a standalone HTML page.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/pbessa/jobradar/internal/job"
	"github.com/pbessa/jobradar/internal/profile"
)

//go:embed report.html.tmpl
var reportTemplate string

type reportData struct {
	Profile     *profile.Profile
	Matches     []*job.Match
	GeneratedAt string
	Total       int
}

// Render writes an HTML report for the given profile and matches to path.
// Parent directories are created as needed.
func Render(path string, p *profile.Profile, matches []*job.Match) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"percent": func(score float64) string {
			return fmt.Sprintf("%.0f%%", score*100)
		},
	}).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer file.Close()

	data := reportData{
		Profile:     p,
		Matches:     matches,
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		Total:       len(matches),
	}
	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	return nil
}
