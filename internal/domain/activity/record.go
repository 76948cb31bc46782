// Package activity holds the state-change records a digest is built from.
package activity

import (
	"context"
	"strings"
	"time"

	"apmdigest/internal/domain/localization"
)

// ChangeRecord is one passage state change, already joined with the project,
// plan and recipient data the digest needs.
type ChangeRecord struct {
	ProjectID      int       `json:"projectid"`
	Project        string    `json:"project"`
	OrganizationID int       `json:"organizationid"`
	Organization   string    `json:"organization"`
	PlanID         int       `json:"planid"`
	Plan           string    `json:"plan"`
	PlanType       string    `json:"plantype"`
	Transcriber    string    `json:"transcriber"`
	Reviewer       string    `json:"reviewer"`
	Passage        string    `json:"passage"`
	State          string    `json:"state"`
	ModifiedBy     string    `json:"modifiedby"`
	Updated        Timestamp `json:"updated"`
	Email          string    `json:"email"`
	Timezone       string    `json:"timezone"`
	LocaleTag      string    `json:"locale"`
	Comments       string    `json:"comments"`
}

// Locale returns the record's locale tag, or the default locale when unset.
func (r ChangeRecord) Locale() string {
	if tag := strings.TrimSpace(r.LocaleTag); tag != "" {
		return tag
	}
	return localization.DefaultLocale
}

// UpdatedAt returns the change instant in UTC.
func (r ChangeRecord) UpdatedAt() time.Time {
	return r.Updated.Time.UTC()
}

// ChangeSource returns every change recorded after since, ordered by
// recipient email and then by update time.
type ChangeSource interface {
	FetchSince(ctx context.Context, since time.Time) ([]ChangeRecord, error)
}
