// Package i18n resolves digest catalogs from translation documents, using a
// go-i18n bundle for the per-key fallback onto the default language.
package i18n

import (
	"context"
	"errors"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"apmdigest/internal/domain/localization"
	apperrors "apmdigest/internal/shared/errors"
	"apmdigest/internal/shared/logger"
	"apmdigest/internal/shared/utils/htmlutil"
)

// Resolver builds the catalog for a locale. It never fails: every problem
// with a translation document degrades to the default catalog.
type Resolver struct {
	source        localization.TranslationSource
	defaultLocale string
	logger        logger.Interface
}

// NewResolver creates a resolver. source may be nil, in which case every
// locale resolves to the default catalog.
func NewResolver(source localization.TranslationSource, defaultLocale string, logger logger.Interface) *Resolver {
	if defaultLocale == "" {
		defaultLocale = localization.DefaultLocale
	}
	return &Resolver{
		source:        source,
		defaultLocale: defaultLocale,
		logger:        logger,
	}
}

// Resolve returns the catalog for locale.
func (r *Resolver) Resolve(ctx context.Context, locale string) localization.Catalog {
	locale = strings.TrimSpace(locale)
	if locale == "" || strings.EqualFold(locale, r.defaultLocale) || r.source == nil {
		return localization.Default()
	}

	catalog, err := r.resolve(ctx, locale)
	if err != nil {
		if errors.Is(err, localization.ErrTranslationNotFound) {
			r.logger.Infow("no translation document, using default catalog", "locale", locale)
		} else {
			r.logger.Errorw("failed to resolve catalog, using default catalog", "locale", locale, "error", err)
		}
		return localization.Default()
	}

	return catalog
}

func (r *Resolver) resolve(ctx context.Context, locale string) (localization.Catalog, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return localization.Catalog{}, apperrors.NewLocalizationError("invalid locale tag", err, locale)
	}

	doc, err := r.source.Fetch(ctx, locale)
	if err != nil {
		if errors.Is(err, localization.ErrTranslationNotFound) {
			return localization.Catalog{}, err
		}
		return localization.Catalog{}, apperrors.NewLocalizationError("failed to fetch translation document", err, locale)
	}

	units, err := readDocument(doc, locale)
	if err != nil {
		return localization.Catalog{}, apperrors.NewLocalizationError("malformed translation document", err, doc.Name)
	}

	bundle, err := r.newBundle(tag, units)
	if err != nil {
		return localization.Catalog{}, apperrors.NewLocalizationError("failed to build translation bundle", err, locale)
	}

	localizer := goi18n.NewLocalizer(bundle, tag.String())
	values := make(map[localization.Key]string, len(localization.Keys()))
	for _, key := range localization.Keys() {
		msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: key.String()})
		if msg == "" {
			if err != nil {
				r.logger.Debugw("translation missing", "locale", locale, "key", key.String(), "error", err)
			}
			continue
		}
		values[key] = msg
	}

	return localization.Merge(locale, values), nil
}

// newBundle seeds a bundle with the default catalog under the default
// language and adds the document's units under tag. Overrides are escaped
// here so the catalog holds render-ready strings.
func (r *Resolver) newBundle(tag language.Tag, units []unit) (*goi18n.Bundle, error) {
	defaultTag := language.Make(r.defaultLocale)
	bundle := goi18n.NewBundle(defaultTag)

	def := localization.Default()
	seed := make([]*goi18n.Message, 0, len(localization.Keys()))
	for _, key := range localization.Keys() {
		seed = append(seed, &goi18n.Message{ID: key.String(), Other: def.Get(key)})
	}
	if err := bundle.AddMessages(defaultTag, seed...); err != nil {
		return nil, err
	}

	overrides := make([]*goi18n.Message, 0, len(units))
	for _, u := range units {
		key, ok := localization.ParseKey(u.ID)
		if !ok {
			r.logger.Debugw("ignoring unknown translation unit", "id", u.ID)
			continue
		}
		value := u.Value
		if escapeFor(key) {
			value = htmlutil.Escape(value)
		}
		overrides = append(overrides, &goi18n.Message{ID: key.String(), Other: value})
	}
	if len(overrides) > 0 {
		if err := bundle.AddMessages(tag, overrides...); err != nil {
			return nil, err
		}
	}

	return bundle, nil
}
