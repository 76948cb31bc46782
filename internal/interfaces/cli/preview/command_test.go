package preview

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apmdigest/internal/application/digest"
	"apmdigest/internal/domain/activity"
	"apmdigest/internal/domain/localization"
)

type defaultResolver struct{}

func (defaultResolver) Resolve(context.Context, string) localization.Catalog {
	return localization.Default()
}

func TestWrite(t *testing.T) {
	templates := digest.Templates{
		Main:     "<main>{daterows}</main>",
		Date:     "{hourrows}",
		Hour:     "{projplanrows}",
		ProjPlan: "{datarows}",
		Row:      "<p>{Passage}</p>",
	}
	composer := digest.NewComposer(digest.NewRenderer(templates, digest.Links{}), defaultResolver{}, nil)
	updated := activity.Timestamp{Time: time.Date(2024, 3, 4, 15, 10, 0, 0, time.UTC)}
	records := []activity.ChangeRecord{
		{Email: "alice@example.org", Passage: "1:1", Updated: updated},
		{Email: "bob@example.org", Passage: "2:1", Updated: updated},
	}
	dir := filepath.Join(t.TempDir(), "out")

	written, err := Write(context.Background(), composer, records, dir)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "alice_at_example.org.html"),
		filepath.Join(dir, "bob_at_example.org.html"),
	}, written)

	body, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Equal(t, "<main><p>2:1</p></main>", string(body))
}
