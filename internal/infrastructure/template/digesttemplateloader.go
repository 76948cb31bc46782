package template

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	"apmdigest/internal/application/digest"
	apperrors "apmdigest/internal/shared/errors"
	"apmdigest/internal/shared/logger"
)

//go:embed defaults/*.hbs
var defaultTemplates embed.FS

// templateFiles maps each template name to its file name.
var templateFiles = map[string]string{
	"main":     "main.layout.hbs",
	"date":     "date.partial.hbs",
	"hour":     "hour.partial.hbs",
	"projplan": "projplan.partial.hbs",
	"headers":  "headers.partial.hbs",
	"row":      "row.partial.hbs",
}

// DigestTemplateLoader reads the digest templates from a directory, falling
// back to the built-in template for every file the directory lacks.
type DigestTemplateLoader struct {
	path   string
	logger logger.Interface
}

// NewDigestTemplateLoader creates a new template loader. An empty path uses
// only the built-in templates.
func NewDigestTemplateLoader(path string, logger logger.Interface) *DigestTemplateLoader {
	return &DigestTemplateLoader{
		path:   path,
		logger: logger,
	}
}

// Load reads all six templates. Placeholders that are missing or repeated are
// logged as warnings: only the first occurrence of a placeholder is replaced.
func (l *DigestTemplateLoader) Load() (digest.Templates, error) {
	var custom fs.FS
	if l.path != "" {
		if info, err := os.Stat(l.path); err == nil && info.IsDir() {
			custom = os.DirFS(l.path)
		} else {
			l.logger.Warnw("templates directory not found, using built-in templates", "path", l.path)
		}
	}

	loaded := make(map[string]string, len(templateFiles))
	customCount := 0
	for name, file := range templateFiles {
		content, isCustom, err := l.read(custom, file)
		if err != nil {
			return digest.Templates{}, err
		}
		if isCustom {
			customCount++
			l.logger.Infow("loaded digest template",
				"template", name,
				"file", file,
				"size", len(content),
			)
		}
		l.check(name, content)
		loaded[name] = content
	}

	if customCount > 0 {
		l.logger.Infow("digest templates loaded", "custom", customCount, "builtin", len(templateFiles)-customCount)
	}

	return digest.Templates{
		Main:     loaded["main"],
		Date:     loaded["date"],
		Hour:     loaded["hour"],
		ProjPlan: loaded["projplan"],
		Headers:  loaded["headers"],
		Row:      loaded["row"],
	}, nil
}

func (l *DigestTemplateLoader) read(custom fs.FS, file string) (string, bool, error) {
	if custom != nil {
		content, err := fs.ReadFile(custom, file)
		if err == nil {
			return string(content), true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", false, apperrors.NewTemplateError("failed to read template", err, path.Join(l.path, file))
		}
		l.logger.Debugw("no custom template found, using built-in", "file", file)
	}

	content, err := defaultTemplates.ReadFile(path.Join("defaults", file))
	if err != nil {
		return "", false, apperrors.NewTemplateError("built-in template missing", err, file)
	}
	return string(content), false, nil
}

func (l *DigestTemplateLoader) check(name, content string) {
	for _, token := range digest.Tokens()[name] {
		switch n := occurrences(content, token); {
		case n == 0:
			l.logger.Warnw("template placeholder missing", "template", name, "placeholder", token)
		case n > 1:
			l.logger.Warnw("template placeholder repeated, only the first is filled",
				"template", name,
				"placeholder", token,
				"count", n,
			)
		}
	}
}

// occurrences counts token in content, ignoring matches that are part of a
// longer "{{token}}" form.
func occurrences(content, token string) int {
	n := strings.Count(content, token)
	if !strings.HasPrefix(token, "{{") {
		n -= strings.Count(content, "{"+token+"}")
	}
	return n
}
