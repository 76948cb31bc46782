package localization

import "maps"

// Catalog maps label keys to display strings for one locale. It is a value:
// nothing mutates it after construction, so one catalog can serve every
// recipient sharing a locale.
type Catalog struct {
	locale string
	values map[Key]string
}

// Default returns the complete built-in catalog.
func Default() Catalog {
	return Catalog{locale: DefaultLocale, values: maps.Clone(defaults)}
}

// NewCatalog builds a catalog holding exactly values. Keys it lacks follow
// the miss policy of Get and State.
func NewCatalog(locale string, values map[Key]string) Catalog {
	return Catalog{locale: locale, values: maps.Clone(values)}
}

// Merge returns the default catalog with overrides applied key by key, so a
// partial translation still yields a complete catalog. Unknown keys are dropped.
func Merge(locale string, overrides map[Key]string) Catalog {
	values := maps.Clone(defaults)
	for k, v := range overrides {
		if _, known := defaults[k]; known {
			values[k] = v
		}
	}
	return Catalog{locale: locale, values: values}
}

// Locale returns the locale tag the catalog was resolved for.
func (c Catalog) Locale() string {
	return c.locale
}

// Get returns the string for k, or the built-in default when the catalog lacks it.
func (c Catalog) Get(k Key) string {
	if v, ok := c.values[k]; ok {
		return v
	}
	return defaults[k]
}

// Lookup returns the string for k and whether this catalog holds it.
func (c Catalog) Lookup(k Key) (string, bool) {
	v, ok := c.values[k]
	return v, ok
}

// State returns the label for a raw activity state and whether the catalog
// knows it. Unknown states come back as the raw value with ok false.
func (c Catalog) State(state string) (label string, ok bool) {
	if v, ok := c.values[StateKey(state)]; ok && v != "" {
		return v, true
	}
	return state, false
}

// Equal reports whether both catalogs hold the same strings, ignoring locale.
func (c Catalog) Equal(other Catalog) bool {
	return maps.Equal(c.values, other.values)
}
