// Package biztime provides the calendar arithmetic behind digest grouping.
// All timestamps are stored and compared in UTC. A recipient's IANA timezone
// is used only to pick the hour bucket and to label it; day buckets and date
// headers stay in UTC.
package biztime

import (
	"strings"
	"sync"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// DefaultDateLocale is used when a locale tag matches no calendar locale.
const DefaultDateLocale = monday.LocaleEnUS

const hourLayout = "3pm MST"

var (
	locations sync.Map // IANA name -> *time.Location

	dateLocalesOnce sync.Once
	dateLocales     []monday.Locale
	dateMatcher     language.Matcher
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Location resolves an IANA timezone name. Empty or unknown names resolve to UTC.
func Location(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC
	}
	if loc, ok := locations.Load(name); ok {
		return loc.(*time.Location)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}
	locations.Store(name, loc)
	return loc
}

// WeekdayUTC returns the UTC day of the week of t.
func WeekdayUTC(t time.Time) time.Weekday {
	return t.UTC().Weekday()
}

// LocalHour returns the hour of day (0-23) of t in timezone tz.
func LocalHour(t time.Time, tz string) int {
	return t.In(Location(tz)).Hour()
}

// HourLabel formats the hour of t in timezone tz as "3pm EST".
func HourLabel(t time.Time, tz string) string {
	return t.In(Location(tz)).Format(hourLayout)
}

// LongDate formats the UTC date of t with weekday, month name, day and year
// in the conventions of locale, e.g. "Monday, January 2, 2006" or
// "lundi 2 janvier 2006".
func LongDate(t time.Time, locale string) string {
	loc := DateLocale(locale)
	layout, ok := monday.FullFormatsByLocale[loc]
	if !ok {
		layout = monday.FullFormatsByLocale[DefaultDateLocale]
	}
	return monday.Format(t.UTC(), layout, loc)
}

// DateLocale picks the calendar locale that best matches a BCP 47 tag.
func DateLocale(locale string) monday.Locale {
	dateLocalesOnce.Do(initDateLocales)

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return DefaultDateLocale
	}
	_, idx, conf := dateMatcher.Match(tag)
	if conf == language.No {
		return DefaultDateLocale
	}
	return dateLocales[idx]
}

func initDateLocales() {
	// en_US first so it is the matcher's fallback
	dateLocales = []monday.Locale{DefaultDateLocale}
	tags := []language.Tag{language.AmericanEnglish}
	for _, l := range monday.ListLocales() {
		if l == DefaultDateLocale {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(string(l), "_", "-"))
		if err != nil {
			continue
		}
		dateLocales = append(dateLocales, l)
		tags = append(tags, tag)
	}
	dateMatcher = language.NewMatcher(tags)
}
