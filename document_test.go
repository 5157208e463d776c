package refparse_test

import (
	"testing"

	"github.com/fwojciec/refparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete document", func(t *testing.T) {
		t.Parallel()

		doc := &refparse.Document{
			Body:    []byte("hello"),
			Charset: "utf-8",
			URL:     refparse.MustParseURL("http://example.com/", "utf-8"),
		}

		require.NoError(t, doc.Validate())
	})

	t.Run("requires a charset", func(t *testing.T) {
		t.Parallel()

		doc := &refparse.Document{
			URL: refparse.MustParseURL("http://example.com/", "utf-8"),
		}

		err := doc.Validate()
		require.Error(t, err)
		assert.Equal(t, refparse.EINVALID, refparse.ErrorCode(err))
	})

	t.Run("requires a URL", func(t *testing.T) {
		t.Parallel()

		doc := &refparse.Document{Charset: "utf-8"}

		err := doc.Validate()
		require.Error(t, err)
		assert.Equal(t, refparse.EINVALID, refparse.ErrorCode(err))
	})
}

func TestDocument_BaseURL(t *testing.T) {
	t.Parallel()

	t.Run("returns the document URL without a redirect", func(t *testing.T) {
		t.Parallel()

		doc := &refparse.Document{
			Charset: "utf-8",
			URL:     refparse.MustParseURL("http://example.com/a", "utf-8"),
		}

		assert.Equal(t, "http://example.com/a", doc.BaseURL().String())
	})

	t.Run("redirect URL takes precedence", func(t *testing.T) {
		t.Parallel()

		doc := &refparse.Document{
			Charset:     "utf-8",
			URL:         refparse.MustParseURL("http://example.com/a", "utf-8"),
			RedirectURL: refparse.MustParseURL("http://moved.example/b", "utf-8"),
		}

		assert.Equal(t, "http://moved.example/b", doc.BaseURL().String())
	})
}
