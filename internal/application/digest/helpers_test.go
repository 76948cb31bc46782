package digest

import (
	"context"
	"sync"
	"time"

	"apmdigest/internal/domain/activity"
	"apmdigest/internal/domain/localization"
)

var testTemplates = Templates{
	Main:     "<main>{{App}}|{{Subject}}|{daterows}|{{Preferences}}|{ProfileLink}|{Year}|{{SIL}}</main>",
	Date:     "<day>{Date}:{hourrows}</day>",
	Hour:     "<hour>{Hour}:{projplanrows}</hour>",
	ProjPlan: `<pp href="{projplanlink}">{ProjPlan}{{headers}}{datarows}</pp>`,
	Headers:  "<h>{{Passage}},{{State}},{{Change}},{{Comments}}</h>",
	Row:      "<row>{Passage},{State},{Change},{Comment}</row>",
}

var testLinks = Links{
	Program:    "-dev",
	ProfileURL: "https://app{program}.audioprojectmanager.org/profile",
	PlanURL:    "http://app{program}.audioprojectmanager.org/plan/{plan}/3",
}

func fixedNow() time.Time {
	return time.Date(2031, time.June, 1, 0, 0, 0, 0, time.UTC)
}

type fakeResolver struct {
	mu       sync.Mutex
	catalogs map[string]localization.Catalog
	calls    []string
}

func (f *fakeResolver) Resolve(_ context.Context, locale string) localization.Catalog {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, locale)
	if c, ok := f.catalogs[locale]; ok {
		return c
	}
	return localization.Default()
}

func newTestComposer(resolver CatalogResolver) *Composer {
	return NewComposer(NewRenderer(testTemplates, testLinks), resolver, fixedNow)
}

func mustTime(s string) activity.Timestamp {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return activity.Timestamp{Time: t}
}

func record(email, updated string, mods ...func(*activity.ChangeRecord)) activity.ChangeRecord {
	rec := activity.ChangeRecord{
		ProjectID:  7,
		Project:    "Genesis",
		PlanID:     42,
		Plan:       "Genesis Plan",
		Passage:    "1:1-5",
		State:      "approved",
		ModifiedBy: "Bob",
		Updated:    mustTime(updated),
		Email:      email,
		Timezone:   "America/New_York",
	}
	for _, mod := range mods {
		mod(&rec)
	}
	return rec
}
