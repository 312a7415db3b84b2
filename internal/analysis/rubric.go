package analysis

import (
	"fmt"
	"math"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// Fixed evaluation categories.
const (
	CategoryLogic        domain.CategoryName = "논리성"
	CategoryStructure    domain.CategoryName = "구조성"
	CategoryExpression   domain.CategoryName = "표현성"
	CategoryCompleteness domain.CategoryName = "완성도"
)

// Category is one weighted evaluation dimension.
type Category struct {
	Name        domain.CategoryName
	Description string
	Weight      float64
}

// Rubric is the table of categories and weights the pipeline is generic over.
// Category weights plus TitleWeight sum to 1.0.
type Rubric struct {
	Categories  []Category
	TitleWeight float64
}

const weightTolerance = 1e-9

// DefaultRubric returns the built-in four-category table.
func DefaultRubric() Rubric {
	return Rubric{
		Categories: []Category{
			{Name: CategoryLogic, Description: "주장과 근거가 자연스럽게 이어지는지", Weight: 0.30},
			{Name: CategoryStructure, Description: "처음, 가운데, 끝의 문단 구성이 잘 갖춰졌는지", Weight: 0.25},
			{Name: CategoryExpression, Description: "어휘와 문장 표현이 정확하고 풍부한지", Weight: 0.20},
			{Name: CategoryCompleteness, Description: "맞춤법과 분량 등 글의 마무리가 충실한지", Weight: 0.15},
		},
		TitleWeight: 0.10,
	}
}

// NewRubric validates a category table loaded from configuration.
func NewRubric(categories []Category, titleWeight float64) (Rubric, error) {
	if len(categories) == 0 {
		return Rubric{}, fmt.Errorf("%w: rubric needs at least one category", domain.ErrInvalidArgument)
	}
	seen := make(map[domain.CategoryName]struct{}, len(categories))
	total := titleWeight
	if titleWeight < 0 {
		return Rubric{}, fmt.Errorf("%w: title weight must not be negative", domain.ErrInvalidArgument)
	}
	for _, c := range categories {
		if c.Name == "" {
			return Rubric{}, fmt.Errorf("%w: category name required", domain.ErrInvalidArgument)
		}
		if _, dup := seen[c.Name]; dup {
			return Rubric{}, fmt.Errorf("%w: duplicate category %s", domain.ErrInvalidArgument, c.Name)
		}
		if c.Weight < 0 {
			return Rubric{}, fmt.Errorf("%w: negative weight for %s", domain.ErrInvalidArgument, c.Name)
		}
		seen[c.Name] = struct{}{}
		total += c.Weight
	}
	if math.Abs(total-1.0) > weightTolerance {
		return Rubric{}, fmt.Errorf("%w: weights sum to %.4f, want 1.0", domain.ErrInvalidArgument, total)
	}
	cp := make([]Category, len(categories))
	copy(cp, categories)
	return Rubric{Categories: cp, TitleWeight: titleWeight}, nil
}

// Names returns the category names in table order.
func (r Rubric) Names() []domain.CategoryName {
	out := make([]domain.CategoryName, 0, len(r.Categories))
	for _, c := range r.Categories {
		out = append(out, c.Name)
	}
	return out
}

// TotalWeight sums every category weight and the title weight.
func (r Rubric) TotalWeight() float64 {
	total := r.TitleWeight
	for _, c := range r.Categories {
		total += c.Weight
	}
	return total
}
