package i18n

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apmdigest/internal/domain/localization"
)

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fr/TranscriberDigest-en.xliff":
			_, _ = w.Write([]byte("<xliff/>"))
		case "/de/TranscriberDigest-en.xliff":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", "TranscriberDigest-en.xliff", srv.Client())

	t.Run("found", func(t *testing.T) {
		doc, err := src.Fetch(context.Background(), "fr")
		require.NoError(t, err)
		assert.Equal(t, "TranscriberDigest-en.xliff", doc.Name)
		assert.Equal(t, "<xliff/>", string(doc.Data))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), "sw")
		require.Error(t, err)
		assert.ErrorIs(t, err, localization.ErrTranslationNotFound)
	})

	t.Run("server error is not a miss", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), "de")
		require.Error(t, err)
		assert.False(t, errors.Is(err, localization.ErrTranslationNotFound))
	})
}

func TestDirSource_Fetch(t *testing.T) {
	fsys := fstest.MapFS{
		"fr/TranscriberDigest-en.xliff": &fstest.MapFile{Data: []byte("<xliff/>")},
		"es.toml":                       &fstest.MapFile{Data: []byte(`"digest.app" = "APM"`)},
	}
	src := NewDirSource(fsys, "TranscriberDigest-en.xliff")

	doc, err := src.Fetch(context.Background(), "fr")
	require.NoError(t, err)
	assert.Equal(t, "fr/TranscriberDigest-en.xliff", doc.Name)

	doc, err = src.Fetch(context.Background(), "es")
	require.NoError(t, err)
	assert.Equal(t, "es.toml", doc.Name)

	_, err = src.Fetch(context.Background(), "de")
	assert.ErrorIs(t, err, localization.ErrTranslationNotFound)

	_, err = src.Fetch(context.Background(), "../etc")
	assert.ErrorIs(t, err, localization.ErrTranslationNotFound)
}

func TestDirSource_ReadErrorIsUnexpected(t *testing.T) {
	src := NewDirSource(brokenFS{}, "TranscriberDigest-en.xliff")
	_, err := src.Fetch(context.Background(), "fr")
	require.Error(t, err)
	assert.False(t, errors.Is(err, localization.ErrTranslationNotFound))
}

type brokenFS struct{}

func (brokenFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrPermission
}
