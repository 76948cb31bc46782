package localization

import (
	"context"
	"errors"
)

// ErrTranslationNotFound reports that no translation document exists for a locale.
var ErrTranslationNotFound = errors.New("translation document not found")

// Document is a raw translation document. Name carries the file name so the
// reader can pick a parser from its extension.
type Document struct {
	Name string
	Data []byte
}

// TranslationSource fetches the translation document for a locale. A missing
// document is reported as ErrTranslationNotFound.
type TranslationSource interface {
	Fetch(ctx context.Context, locale string) (*Document, error)
}
