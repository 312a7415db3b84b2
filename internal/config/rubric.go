package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/writing-compass/internal/analysis"
	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// RubricYAML is the on-disk layout of configs/rubric.yaml.
type RubricYAML struct {
	Categories []struct {
		Name        string  `yaml:"name"`
		Description string  `yaml:"description"`
		Weight      float64 `yaml:"weight"`
	} `yaml:"categories"`
	TitleWeight float64 `yaml:"title_weight"`
}

// LoadRubric reads and validates a rubric file. An empty path yields the built-in rubric.
func LoadRubric(path string) (analysis.Rubric, error) {
	if strings.TrimSpace(path) == "" {
		return analysis.DefaultRubric(), nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return analysis.Rubric{}, fmt.Errorf("op=config.LoadRubric: %w", err)
	}
	// #nosec G304 -- rubric path comes from operator configuration
	content, err := os.ReadFile(absPath)
	if err != nil {
		return analysis.Rubric{}, fmt.Errorf("op=config.LoadRubric: %w", err)
	}
	return ParseRubric(content)
}

// ParseRubric decodes rubric YAML and validates its weights.
func ParseRubric(content []byte) (analysis.Rubric, error) {
	var doc RubricYAML
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return analysis.Rubric{}, fmt.Errorf("op=config.ParseRubric: %w: %v", domain.ErrInvalidArgument, err)
	}
	cats := make([]analysis.Category, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		cats = append(cats, analysis.Category{
			Name:        domain.CategoryName(strings.TrimSpace(c.Name)),
			Description: strings.TrimSpace(c.Description),
			Weight:      c.Weight,
		})
	}
	r, err := analysis.NewRubric(cats, doc.TitleWeight)
	if err != nil {
		return analysis.Rubric{}, fmt.Errorf("op=config.ParseRubric: %w", err)
	}
	return r, nil
}
