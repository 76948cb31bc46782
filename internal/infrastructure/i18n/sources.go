package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"apmdigest/internal/domain/localization"
)

const (
	requestTimeout = 10 * time.Second
	// Maximum translation document size (1MB)
	maxDocumentSize = 1 << 20
)

// HTTPSource reads "<baseURL>/<locale>/<document>" from an object store
// bucket exposed over HTTP.
type HTTPSource struct {
	baseURL    string
	document   string
	httpClient *http.Client
}

var _ localization.TranslationSource = (*HTTPSource)(nil)

func NewHTTPSource(baseURL, document string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		document:   document,
		httpClient: client,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, locale string) (*localization.Document, error) {
	docURL := fmt.Sprintf("%s/%s/%s", s.baseURL, url.PathEscape(locale), s.document)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", docURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", docURL, localization.ErrTranslationNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, docURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", docURL, err)
	}

	return &localization.Document{Name: s.document, Data: data}, nil
}

// DirSource reads translation documents from a directory tree laid out like
// the bucket ("<locale>/<document>"); "<locale>.toml" is used when no such
// document exists.
type DirSource struct {
	fsys     fs.FS
	document string
}

var _ localization.TranslationSource = (*DirSource)(nil)

func NewDirSource(fsys fs.FS, document string) *DirSource {
	return &DirSource{fsys: fsys, document: document}
}

func (s *DirSource) Fetch(_ context.Context, locale string) (*localization.Document, error) {
	if !fs.ValidPath(locale) || strings.Contains(locale, "/") {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, localization.ErrTranslationNotFound)
	}

	candidates := []string{
		path.Join(locale, s.document),
		locale + ".toml",
	}
	for _, name := range candidates {
		data, err := fs.ReadFile(s.fsys, name)
		if err == nil {
			return &localization.Document{Name: name, Data: data}, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
	}

	return nil, fmt.Errorf("%s: %w", locale, localization.ErrTranslationNotFound)
}
