package activity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeRecord_DecodeAttributes(t *testing.T) {
	raw := `{
		"projectid": 7, "project": "Genesis", "organizationid": 2, "organization": "SIL",
		"planid": 31, "plan": "Chapter 1", "plantype": "Scripture",
		"passage": "1:1-5", "state": "transcribeReady", "modifiedby": "Bob",
		"updated": "2024-03-04T15:30:00.000Z", "email": "alice@example.com",
		"timezone": "America/New_York", "locale": "fr", "comments": null
	}`

	var rec ChangeRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	assert.Equal(t, 31, rec.PlanID)
	assert.Equal(t, "Chapter 1", rec.Plan)
	assert.Equal(t, "transcribeReady", rec.State)
	assert.Equal(t, "", rec.Comments)
	assert.Equal(t, "fr", rec.Locale())
	assert.Equal(t, time.Date(2024, time.March, 4, 15, 30, 0, 0, time.UTC), rec.UpdatedAt())
}

func TestChangeRecord_LocaleDefault(t *testing.T) {
	assert.Equal(t, "en", ChangeRecord{}.Locale())
	assert.Equal(t, "en", ChangeRecord{LocaleTag: "  "}.Locale())
	assert.Equal(t, "pt-BR", ChangeRecord{LocaleTag: "pt-BR"}.Locale())
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, time.March, 4, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "rfc3339 utc", input: "2024-03-04T15:30:00Z", want: want},
		{name: "rfc3339 offset", input: "2024-03-04T10:30:00-05:00", want: want},
		{name: "fractional zoneless", input: "2024-03-04T15:30:00.000", want: want},
		{name: "sql style", input: "2024-03-04 15:30:00", want: want},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestTimestamp_UnmarshalNull(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte("null"), &ts))
	assert.True(t, ts.IsZero())

	require.Error(t, json.Unmarshal([]byte("12"), &ts))
}
