// Package digest groups ordered change records into one HTML digest per
// recipient.
package digest

import (
	"context"
	"strings"
	"time"

	"apmdigest/internal/domain/activity"
	"apmdigest/internal/domain/localization"
	"apmdigest/internal/shared/biztime"
)

// CatalogResolver produces the label catalog for a locale. It never fails.
type CatalogResolver interface {
	Resolve(ctx context.Context, locale string) localization.Catalog
}

// RenderedDigest is the finished mail for one recipient.
type RenderedDigest struct {
	Recipient string
	Subject   string
	Body      string
	Locale    string
	Records   int
}

type projPlanKey struct {
	project string
	plan    string
}

func byRecipient(r activity.ChangeRecord) string { return r.Email }
func byDay(r activity.ChangeRecord) time.Weekday { return biztime.WeekdayUTC(r.UpdatedAt()) }
func byHour(r activity.ChangeRecord) int { return biztime.LocalHour(r.UpdatedAt(), r.Timezone) }
func byProjPlan(r activity.ChangeRecord) projPlanKey { return projPlanKey{project: r.Project, plan: r.Plan} }

// Composer runs the recipient, day, hour and project/plan grouping over
// records sorted by email then update time. Records are never re-sorted.
type Composer struct {
	renderer *Renderer
	resolver CatalogResolver
	now      func() time.Time
}

// NewComposer creates a Composer. now supplies the footer year; nil means
// the current UTC time.
func NewComposer(renderer *Renderer, resolver CatalogResolver, now func() time.Time) *Composer {
	if now == nil {
		now = biztime.NowUTC
	}
	return &Composer{
		renderer: renderer,
		resolver: resolver,
		now:      now,
	}
}

// Compose calls emit once per recipient run, in input order. The catalog is
// resolved again only when a recipient's locale differs from the previous
// recipient's.
func (c *Composer) Compose(ctx context.Context, records []activity.ChangeRecord, emit func(RenderedDigest)) {
	var (
		cat        localization.Catalog
		lastLocale string
		resolved   bool
	)

	for _, run := range Runs(records, byRecipient) {
		locale := run[0].Locale()
		if !resolved || !strings.EqualFold(locale, lastLocale) {
			cat = c.resolver.Resolve(ctx, locale)
			lastLocale, resolved = locale, true
		}

		emit(RenderedDigest{
			Recipient: run[0].Email,
			Subject:   cat.Get(localization.DigestSubject),
			Body:      c.Body(run, cat),
			Locale:    locale,
			Records:   len(run),
		})
	}
}

// ComposeAll collects every digest Compose would emit.
func (c *Composer) ComposeAll(ctx context.Context, records []activity.ChangeRecord) []RenderedDigest {
	var out []RenderedDigest
	c.Compose(ctx, records, func(d RenderedDigest) {
		out = append(out, d)
	})
	return out
}

// Body renders the full document for the records of a single recipient.
func (c *Composer) Body(records []activity.ChangeRecord, cat localization.Catalog) string {
	r := c.renderer
	headers := r.Headers(cat)

	days := FoldRuns(records, byDay, func(day []activity.ChangeRecord) string {
		hours := FoldRuns(day, byHour, func(hour []activity.ChangeRecord) string {
			projPlans := FoldRuns(hour, byProjPlan, func(pp []activity.ChangeRecord) string {
				var rows strings.Builder
				for _, rec := range pp {
					rows.WriteString(r.Row(rec, cat))
				}
				return r.ProjPlan(pp[0], headers, rows.String())
			})
			return r.Hour(hour[0], projPlans)
		})
		return r.Day(day[0], hours)
	})

	return r.Digest(days, cat, c.now())
}
