// Package tika extracts essay text from PDF and Word uploads through an
// Apache Tika server.
package tika

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/writing-compass/internal/domain"
	"github.com/fairyhunter13/writing-compass/pkg/textx"
)

// Client is a minimal Tika HTTP client implementing domain.TextExtractor.
// It performs PUT /tika with Accept: text/plain.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a Tika client with a default timeout.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Supports reports whether the file extension needs Tika.
func Supports(fileName string) bool {
	return contentTypeFromExt(filepath.Ext(fileName)) != ""
}

// Extract sends data to Tika and returns the plain text with paragraph
// breaks preserved.
func (c *Client) Extract(ctx context.Context, fileName string, data []byte) (string, error) {
	ct := contentTypeFromExt(filepath.Ext(fileName))
	if ct == "" {
		return "", fmt.Errorf("%w: unsupported document %q", domain.ErrInvalidArgument, fileName)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("op=tika.Extract: %w", err)
	}
	req.Header.Set("Accept", "text/plain; charset=utf-8")
	req.Header.Set("Content-Type", ct)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("op=tika.Extract: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusUnsupportedMediaType {
			return "", fmt.Errorf("%w: tika status %d", domain.ErrInvalidArgument, resp.StatusCode)
		}
		return "", fmt.Errorf("op=tika.Extract: tika status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("op=tika.Extract: %w", err)
	}
	text := cleanExtracted(string(b))
	slog.DebugContext(ctx, "document extracted",
		slog.String("file", fileName),
		slog.Int("bytes", len(data)),
		slog.Int("chars", len([]rune(text))),
		slog.Duration("elapsed", time.Since(start)))
	return text, nil
}

// Ping checks the server through GET /version.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("tika status %d", resp.StatusCode)
}

var (
	spaceRun = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankRun = regexp.MustCompile(`\n{3,}`)
)

// cleanExtracted collapses horizontal whitespace inside lines and limits blank
// runs to one empty line, keeping the line structure paragraph counting uses.
func cleanExtracted(s string) string {
	s = textx.NormalizeNFC(textx.NormalizeNewlines(textx.SanitizeText(s)))
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(l, " "))
	}
	return strings.TrimSpace(blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}

func contentTypeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".hwpx":
		return "application/hwp+zip"
	}
	return ""
}
