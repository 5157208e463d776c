package goquery_test

import (
	"testing"

	"github.com/fwojciec/refparse"
	gqparser "github.com/fwojciec/refparse/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Parser implements refparse.DocumentParser at compile time.
var _ refparse.DocumentParser = (*gqparser.Parser)(nil)

func newHTMLDoc(t *testing.T, body string) *refparse.Document {
	t.Helper()
	return &refparse.Document{
		Body:    []byte(body),
		Charset: "utf-8",
		URL:     refparse.MustParseURL("http://example.com/docs/index.html", "utf-8"),
	}
}

func urlStrings(urls []*refparse.URL) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		out = append(out, u.String())
	}
	return out
}

func TestParser_References(t *testing.T) {
	t.Parallel()

	t.Run("collects tag attribute references resolved against base", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<a href="/a">A</a>
<a href="b.html">B</a>
<img src="../images/logo.png">
<iframe src="https://widgets.example/frame"></iframe>
</body>
</html>`

		p, err := gqparser.NewParser(newHTMLDoc(t, html))
		require.NoError(t, err)

		parsed, _ := p.References()
		assert.ElementsMatch(t, []string{
			"http://example.com/a",
			"http://example.com/docs/b.html",
			"http://example.com/images/logo.png",
			"https://widgets.example/frame",
		}, urlStrings(parsed))
	})

	t.Run("regex fallback catches URLs outside tag structure", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<p>raw mention: http://plain.example/seen</p>
<script>var endpoint = "https://api.example/v2";</script>
</body></html>`

		p, err := gqparser.NewParser(newHTMLDoc(t, html))
		require.NoError(t, err)

		_, regex := p.References()
		assert.ElementsMatch(t, []string{
			"http://plain.example/seen",
			"https://api.example/v2",
		}, urlStrings(regex))
	})

	t.Run("deduplicates structural references", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/same">one</a><a href="/same">two</a>`

		p, err := gqparser.NewParser(newHTMLDoc(t, html))
		require.NoError(t, err)

		parsed, _ := p.References()
		assert.Len(t, parsed, 1)
	})

	t.Run("skips fragments and non-navigable schemes", func(t *testing.T) {
		t.Parallel()

		html := `<a href="#top">top</a>
<a href="javascript:void(0)">js</a>
<a href="tel:+15551234">call</a>
<a href="data:text/plain,hi">data</a>`

		p, err := gqparser.NewParser(newHTMLDoc(t, html))
		require.NoError(t, err)

		parsed, regex := p.References()
		assert.Empty(t, parsed)
		assert.Empty(t, regex)
	})

	t.Run("resolves against the redirect URL when present", func(t *testing.T) {
		t.Parallel()

		doc := newHTMLDoc(t, `<a href="/moved">x</a>`)
		doc.RedirectURL = refparse.MustParseURL("http://moved.example/base/", "utf-8")

		p, err := gqparser.NewParser(doc)
		require.NoError(t, err)

		parsed, _ := p.References()
		require.Len(t, parsed, 1)
		assert.Equal(t, "http://moved.example/moved", parsed[0].String())
	})

	t.Run("unparseable bodies degrade to regex extraction", func(t *testing.T) {
		t.Parallel()

		// Not HTML at all, but the parser never fails on body content.
		p, err := gqparser.NewParser(newHTMLDoc(t, "\x01<<<>>> http://still.example/found"))
		require.NoError(t, err)

		_, regex := p.References()
		require.Len(t, regex, 1)
		assert.Equal(t, "http://still.example/found", regex[0].String())
	})
}

func TestParser_Emails(t *testing.T) {
	t.Parallel()

	html := `<a href="mailto:Bob@Example.com?subject=hi">mail</a>
<p>or write to alice@other.example</p>`

	p, err := gqparser.NewParser(newHTMLDoc(t, html))
	require.NoError(t, err)

	assert.Equal(t, []string{"alice@other.example", "bob@example.com"}, p.Emails(""))
	assert.Equal(t, []string{"bob@example.com"}, p.Emails("example.com"))

	// mailto links never count as references.
	parsed, regex := p.References()
	assert.Empty(t, parsed)
	assert.Empty(t, regex)
}

func TestParser_Forms(t *testing.T) {
	t.Parallel()

	html := `<form method="post" action="/login">
<input type="text" name="user" value="guest">
<input type="password" name="pass">
<select name="role"><option>admin</option></select>
<input type="submit" value="go">
</form>
<form><input name="q"></form>`

	p, err := gqparser.NewParser(newHTMLDoc(t, html))
	require.NoError(t, err)

	forms := p.Forms()
	require.Len(t, forms, 2)

	login := forms[0]
	assert.Equal(t, "POST", login.Method)
	assert.Equal(t, "http://example.com/login", login.Action.String())
	require.Len(t, login.Inputs, 3) // the nameless submit is not a control we report
	assert.Equal(t, refparse.FormInput{Name: "user", Type: "text", Value: "guest"}, login.Inputs[0])
	assert.Equal(t, refparse.FormInput{Name: "pass", Type: "password"}, login.Inputs[1])
	assert.Equal(t, refparse.FormInput{Name: "role", Type: "select"}, login.Inputs[2])

	search := forms[1]
	assert.Equal(t, "GET", search.Method)
	assert.Equal(t, "http://example.com/docs/index.html", search.Action.String())
	require.Len(t, search.Inputs, 1)
	assert.Equal(t, refparse.FormInput{Name: "q", Type: "text"}, search.Inputs[0])
}

func TestParser_CommentsAndScripts(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<!-- first comment -->
<script>console.log("inline");</script>
<script src="/app.js"></script>
<!-- second comment -->
</body></html>`

	p, err := gqparser.NewParser(newHTMLDoc(t, html))
	require.NoError(t, err)

	assert.Equal(t, []string{"first comment", "second comment"}, p.Comments())
	assert.Equal(t, []string{`console.log("inline");`}, p.Scripts())

	// The external script is a structural reference instead.
	parsed, _ := p.References()
	assert.Contains(t, urlStrings(parsed), "http://example.com/app.js")
}

func TestParser_Meta(t *testing.T) {
	t.Parallel()

	html := `<html><head>
<meta name="description" content="a page">
<meta http-equiv="Refresh" content="0; URL='/next'">
</head><body></body></html>`

	p, err := gqparser.NewParser(newHTMLDoc(t, html))
	require.NoError(t, err)

	tags := p.MetaTags()
	require.Len(t, tags, 2)
	assert.Equal(t, refparse.MetaTag{Name: "description", Content: "a page"}, tags[0])
	assert.Equal(t, refparse.MetaTag{Name: "Refresh", Content: "0; URL='/next'"}, tags[1])

	redirects := p.MetaRedirects()
	require.Len(t, redirects, 1)
	assert.Equal(t, "http://example.com/next", redirects[0].String())
}

func TestParser_UnknownCharsetIsFatal(t *testing.T) {
	t.Parallel()

	doc := newHTMLDoc(t, "<html></html>")
	doc.Charset = "bogus-enc-9999"

	_, err := gqparser.NewParser(doc)

	require.Error(t, err)
	assert.Equal(t, refparse.EUNSUPPORTED, refparse.ErrorCode(err))
}
