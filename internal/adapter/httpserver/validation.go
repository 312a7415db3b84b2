package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/writing-compass/internal/domain"
	"github.com/fairyhunter13/writing-compass/pkg/textx"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// EssayRequest is the essay payload shared by analysis endpoints.
type EssayRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=20000"`
	Grade   string `json:"grade" validate:"max=20"`
	Class   string `json:"class" validate:"max=20"`
	Number  string `json:"number" validate:"max=20"`
	Name    string `json:"name" validate:"max=50"`
}

// Metadata converts the request into sanitized, NFC-normalized essay metadata.
func (e EssayRequest) Metadata() domain.EssayMetadata {
	clean := func(s string) string { return textx.NormalizeNFC(textx.SanitizeText(s)) }
	return domain.EssayMetadata{
		Title:   clean(e.Title),
		Content: textx.NormalizeNFC(textx.NormalizeNewlines(textx.SanitizeText(e.Content))),
		Grade:   clean(e.Grade),
		Class:   clean(e.Class),
		Number:  clean(e.Number),
		Name:    clean(e.Name),
	}
}

// ParseRequest carries report text produced elsewhere.
type ParseRequest struct {
	RawText string       `json:"raw_text" validate:"required,max=100000"`
	Essay   EssayRequest `json:"essay"`
}

// SuggestRequest asks for a paragraph split of content.
type SuggestRequest struct {
	Content     string `json:"content" validate:"required,max=20000"`
	RequestType string `json:"requestType" validate:"omitempty,eq=paragraphSuggestion"`
}

// StatisticsRequest asks for live text statistics.
type StatisticsRequest struct {
	Content string `json:"content" validate:"max=20000"`
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() {
		vld = validator.New()
		vld.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return vld
}

// decodeAndValidate reads a JSON body into dst and validates it. On failure it
// writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
				Code: "INVALID_ARGUMENT", Message: "payload too large", Details: map[string]any{"max_bytes": maxJSONBody},
			}})
			return false
		}
		writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
		return false
	}
	if err := getValidator().Struct(dst); err != nil {
		verrs := map[string]string{}
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				verrs[fe.Namespace()[strings.Index(fe.Namespace(), ".")+1:]] = fe.Tag()
			}
		}
		writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
		return false
	}
	return true
}
