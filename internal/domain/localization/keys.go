// Package localization defines the closed set of digest labels and the
// immutable catalogs that map them to display strings.
package localization

import "strings"

// DefaultLocale is the built-in language; it never needs a translation document.
const DefaultLocale = "en"

// Family groups label keys. Translation documents address a key as "<family>.<name>".
type Family string

const (
	FamilyDigest        Family = "digest"
	FamilyActivityState Family = "activity-state"
)

// familyAliases lists alternative spellings found in translation documents.
var familyAliases = map[string]Family{
	"digest":         FamilyDigest,
	"activity-state": FamilyActivityState,
	"activityState":  FamilyActivityState,
}

// Key identifies one label.
type Key struct {
	Family Family
	Name   string
}

func (k Key) String() string {
	return string(k.Family) + "." + k.Name
}

var (
	DigestApp         = Key{FamilyDigest, "app"}
	DigestProject     = Key{FamilyDigest, "project"}
	DigestPlan        = Key{FamilyDigest, "plan"}
	DigestPassage     = Key{FamilyDigest, "passage"}
	DigestState       = Key{FamilyDigest, "state"}
	DigestUser        = Key{FamilyDigest, "user"}
	DigestComments    = Key{FamilyDigest, "comments"}
	DigestPreferences = Key{FamilyDigest, "preferences"}
	DigestSIL         = Key{FamilyDigest, "sil"}
	DigestSubject     = Key{FamilyDigest, "subject"}

	StateApproved              = Key{FamilyActivityState, "approved"}
	StateDone                  = Key{FamilyActivityState, "done"}
	StateIncomplete            = Key{FamilyActivityState, "incomplete"}
	StateNeedsNewRecording     = Key{FamilyActivityState, "needsNewRecording"}
	StateNeedsNewTranscription = Key{FamilyActivityState, "needsNewTranscription"}
	StateNoMedia               = Key{FamilyActivityState, "noMedia"}
	StateReview                = Key{FamilyActivityState, "review"}
	StateReviewing             = Key{FamilyActivityState, "reviewing"}
	StateSynced                = Key{FamilyActivityState, "synced"}
	StateTranscribe            = Key{FamilyActivityState, "transcribe"}
	StateTranscribed           = Key{FamilyActivityState, "transcribed"}
	StateTranscribeReady       = Key{FamilyActivityState, "transcribeReady"}
	StateTranscribing          = Key{FamilyActivityState, "transcribing"}
)

// defaults is the built-in English catalog.
var defaults = map[Key]string{
	DigestApp:         "Audio Project Manager",
	DigestProject:     "Project",
	DigestPlan:        "Plan",
	DigestPassage:     "Passage",
	DigestState:       "Change",
	DigestUser:        "User",
	DigestComments:    "Comments",
	DigestPreferences: "Change communication preferences",
	DigestSIL:         "SIL International",
	DigestSubject:     "Daily Digest of Audio Project Manager Activity",

	StateApproved:              "Approved",
	StateDone:                  "Done",
	StateIncomplete:            "Incomplete",
	StateNeedsNewRecording:     "Needs New Recording",
	StateNeedsNewTranscription: "Needs New Transcription",
	StateNoMedia:               "No Media",
	StateReview:                "Ready to Review",
	StateReviewing:             "Reviewing",
	StateSynced:                "Synced",
	StateTranscribe:            "Transcribe",
	StateTranscribed:           "Transcribed",
	StateTranscribeReady:       "Ready to Transcribe",
	StateTranscribing:          "Transcribing",
}

// Keys returns every known key, digest family first, in a stable order.
func Keys() []Key {
	return []Key{
		DigestApp, DigestProject, DigestPlan, DigestPassage, DigestState, DigestUser,
		DigestComments, DigestPreferences, DigestSIL, DigestSubject,
		StateApproved, StateDone, StateIncomplete, StateNeedsNewRecording,
		StateNeedsNewTranscription, StateNoMedia, StateReview, StateReviewing,
		StateSynced, StateTranscribe, StateTranscribed, StateTranscribeReady, StateTranscribing,
	}
}

// ParseKey maps a translation unit id such as "digest.app" onto a known key.
// Unknown families and names report false.
func ParseKey(id string) (Key, bool) {
	family, name, ok := strings.Cut(strings.TrimSpace(id), ".")
	if !ok {
		return Key{}, false
	}
	f, ok := familyAliases[family]
	if !ok {
		return Key{}, false
	}
	k := Key{Family: f, Name: name}
	if _, known := defaults[k]; !known {
		return Key{}, false
	}
	return k, true
}

// StateKey returns the activity-state key for a raw state value.
func StateKey(state string) Key {
	return Key{Family: FamilyActivityState, Name: state}
}
