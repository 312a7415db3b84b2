package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// UploadHandler accepts a multipart essay file plus metadata fields and
// analyzes it like AnalyzeHandler. Plain .txt is always accepted; documents
// need an Extractor.
func (s *Server) UploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if writeNotAcceptable(w, r) {
			return
		}
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadKB * 1024
		if maxBytes <= 0 {
			maxBytes = 256 * 1024
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+64*1024)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "too large") {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
					Code: "INVALID_ARGUMENT", Message: "payload too large", Details: map[string]any{"max_kb": s.Cfg.MaxUploadKB},
				}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		file, header, err := r.FormFile("essay")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: essay file required", domain.ErrInvalidArgument), map[string]string{"field": "essay"})
			return
		}
		defer func() { _ = file.Close() }()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		docMIMEs, isDoc := documentMIMEs[ext]
		if ext != ".txt" && (!isDoc || s.Extractor == nil) {
			writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{
				Code: "INVALID_ARGUMENT", Message: "unsupported media type (extension)", Details: map[string]any{"filename": header.Filename},
			}})
			return
		}
		data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: essay read: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		if int64(len(data)) > maxBytes {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
				Code: "INVALID_ARGUMENT", Message: "payload too large", Details: map[string]any{"max_kb": s.Cfg.MaxUploadKB},
			}})
			return
		}
		m := mimetype.Detect(data)
		if !allowedMIME(m, ext, docMIMEs) {
			writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{
				Code: "INVALID_ARGUMENT", Message: "unsupported media type (content)", Details: map[string]any{"mime": m.String(), "filename": header.Filename},
			}})
			return
		}
		content := string(data)
		if isDoc {
			if content, err = s.Extractor.Extract(r.Context(), header.Filename, data); err != nil {
				writeError(w, r, err, nil)
				return
			}
		}

		req := EssayRequest{
			Title:   r.FormValue("title"),
			Content: content,
			Grade:   r.FormValue("grade"),
			Class:   r.FormValue("class"),
			Number:  r.FormValue("number"),
			Name:    r.FormValue("name"),
		}
		if req.Title == "" {
			req.Title = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
		}
		if err := getValidator().Struct(req); err != nil {
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), nil)
			return
		}
		res, err := s.Analyze.Analyze(r.Context(), req.Metadata(), clientKey(r))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		w.Header().Set("Location", "/v1/analyses/"+res.ID)
		writeJSON(w, http.StatusCreated, res)
	}
}

// documentMIMEs lists the sniffed types accepted per document extension.
var documentMIMEs = map[string][]string{
	".pdf":  {"application/pdf"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	".hwpx": {"application/zip"},
}

func allowedMIME(m *mimetype.MIME, ext string, docMIMEs []string) bool {
	if ext == ".txt" {
		return strings.HasPrefix(m.String(), "text/")
	}
	for _, want := range docMIMEs {
		if m.Is(want) {
			return true
		}
	}
	return false
}
