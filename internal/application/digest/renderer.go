package digest

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"apmdigest/internal/domain/activity"
	"apmdigest/internal/domain/localization"
	"apmdigest/internal/shared/biztime"
	"apmdigest/internal/shared/utils/htmlutil"
)

// Placeholder tokens recognised in each template.
const (
	TokenPassage = "{Passage}"
	TokenState   = "{State}"
	TokenChange  = "{Change}"
	TokenComment = "{Comment}"

	TokenPassageHeader  = "{{Passage}}"
	TokenStateHeader    = "{{State}}"
	TokenChangeHeader   = "{{Change}}"
	TokenCommentsHeader = "{{Comments}}"

	TokenProjPlanLink = "{projplanlink}"
	TokenProjPlan     = "{ProjPlan}"
	TokenHeaders      = "{{headers}}"
	TokenDataRows     = "{datarows}"

	TokenHour         = "{Hour}"
	TokenProjPlanRows = "{projplanrows}"

	TokenDate     = "{Date}"
	TokenHourRows = "{hourrows}"

	TokenApp         = "{{App}}"
	TokenSubject     = "{{Subject}}"
	TokenDateRows    = "{daterows}"
	TokenPreferences = "{{Preferences}}"
	TokenProfileLink = "{ProfileLink}"
	TokenYear        = "{Year}"
	TokenSIL         = "{{SIL}}"
)

// Templates holds the HTML fragment for every nesting level.
type Templates struct {
	Main     string
	Date     string
	Hour     string
	ProjPlan string
	Headers  string
	Row      string
}

// Tokens lists the placeholders each template is expected to carry, keyed by
// template name.
func Tokens() map[string][]string {
	return map[string][]string{
		"main":     {TokenApp, TokenSubject, TokenDateRows, TokenPreferences, TokenProfileLink, TokenYear, TokenSIL},
		"date":     {TokenDate, TokenHourRows},
		"hour":     {TokenHour, TokenProjPlanRows},
		"projplan": {TokenProjPlanLink, TokenProjPlan, TokenHeaders, TokenDataRows},
		"headers":  {TokenPassageHeader, TokenStateHeader, TokenChangeHeader, TokenCommentsHeader},
		"row":      {TokenPassage, TokenState, TokenChange, TokenComment},
	}
}

// Links builds the deep links embedded in a digest. URL patterns may contain
// "{program}" and, for plans, "{plan}".
type Links struct {
	Program    string
	ProfileURL string
	PlanURL    string
}

func (l Links) Profile() string {
	return strings.ReplaceAll(l.ProfileURL, "{program}", l.Program)
}

func (l Links) Plan(planID int) string {
	return strings.NewReplacer("{program}", l.Program, "{plan}", strconv.Itoa(planID)).Replace(l.PlanURL)
}

// Renderer turns grouped records into HTML. It holds no per-run state.
type Renderer struct {
	templates Templates
	links     Links
}

func NewRenderer(templates Templates, links Links) *Renderer {
	return &Renderer{
		templates: templates,
		links:     links,
	}
}

// Row renders one change. Unknown states are shown raw.
func (r *Renderer) Row(rec activity.ChangeRecord, cat localization.Catalog) string {
	state, known := cat.State(rec.State)
	if !known {
		state = htmlutil.Escape(state)
	}
	return fill(r.templates.Row,
		TokenPassage, htmlutil.Escape(rec.Passage),
		TokenState, state,
		TokenChange, htmlutil.Escape(rec.ModifiedBy),
		TokenComment, htmlutil.Escape(rec.Comments),
	)
}

// Headers renders the localized column headers.
func (r *Renderer) Headers(cat localization.Catalog) string {
	return fill(r.templates.Headers,
		TokenPassageHeader, cat.Get(localization.DigestPassage),
		TokenStateHeader, cat.Get(localization.DigestState),
		TokenChangeHeader, cat.Get(localization.DigestUser),
		TokenCommentsHeader, cat.Get(localization.DigestComments),
	)
}

// ProjPlan renders a project/plan block headed by the plan of first.
func (r *Renderer) ProjPlan(first activity.ChangeRecord, headers, rows string) string {
	return fill(r.templates.ProjPlan,
		TokenProjPlanLink, r.links.Plan(first.PlanID),
		TokenProjPlan, htmlutil.Escape(first.Plan),
		TokenHeaders, headers,
		TokenDataRows, rows,
	)
}

// Hour renders an hour block labelled in the timezone of first.
func (r *Renderer) Hour(first activity.ChangeRecord, projPlans string) string {
	return fill(r.templates.Hour,
		TokenHour, biztime.HourLabel(first.UpdatedAt(), first.Timezone),
		TokenProjPlanRows, projPlans,
	)
}

// Day renders a day block headed by the long date of first in its locale.
func (r *Renderer) Day(first activity.ChangeRecord, hours string) string {
	return fill(r.templates.Date,
		TokenDate, htmlutil.Escape(biztime.LongDate(first.UpdatedAt(), first.Locale())),
		TokenHourRows, hours,
	)
}

// Digest wraps the day blocks in the main layout.
func (r *Renderer) Digest(days string, cat localization.Catalog, now time.Time) string {
	return fill(r.templates.Main,
		TokenApp, cat.Get(localization.DigestApp),
		TokenSubject, htmlutil.Escape(cat.Get(localization.DigestSubject)),
		TokenDateRows, days,
		TokenPreferences, cat.Get(localization.DigestPreferences),
		TokenProfileLink, r.links.Profile(),
		TokenYear, strconv.Itoa(now.Year()),
		TokenSIL, cat.Get(localization.DigestSIL),
	)
}

// fill replaces the first occurrence of each token in tmpl with its value.
// Replacement happens in one pass over tmpl, so tokens inside inserted values
// are never expanded. pairs alternates token and value.
func fill(tmpl string, pairs ...string) string {
	type hit struct {
		at    int
		token string
		value string
	}

	hits := make([]hit, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if at := strings.Index(tmpl, pairs[i]); at >= 0 {
			hits = append(hits, hit{at: at, token: pairs[i], value: pairs[i+1]})
		}
	}
	slices.SortFunc(hits, func(a, b hit) int { return a.at - b.at })

	var b strings.Builder
	pos := 0
	for _, h := range hits {
		if h.at < pos {
			// overlaps a token already replaced
			continue
		}
		b.WriteString(tmpl[pos:h.at])
		b.WriteString(h.value)
		pos = h.at + len(h.token)
	}
	b.WriteString(tmpl[pos:])
	return b.String()
}
