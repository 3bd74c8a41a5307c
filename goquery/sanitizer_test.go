package goquery_test

import (
	"sync"
	"testing"

	"github.com/fwojciec/listicle"
	"github.com/fwojciec/listicle/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Sanitizer implements listicle.Sanitizer at compile time.
var _ listicle.Sanitizer = (*goquery.Sanitizer)(nil)

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	t.Run("removes script, nav and hidden content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Koffie</title></head><body>
			<nav>MENU-LINK-TEXT</nav>
			<script>var secretTracker = 1;</script>
			<div style="display: none">HIDDEN-DIV-TEXT</div>
			<p>Zichtbare tekst</p>
		</body></html>`

		cleaned, _, err := goquery.NewSanitizer().Sanitize(html)

		require.NoError(t, err)
		assert.NotContains(t, cleaned, "MENU-LINK-TEXT")
		assert.NotContains(t, cleaned, "secretTracker")
		assert.NotContains(t, cleaned, "HIDDEN-DIV-TEXT")
		assert.Contains(t, cleaned, "Zichtbare tekst")
	})

	t.Run("removes all chrome and form elements", func(t *testing.T) {
		t.Parallel()

		html := `<body>
			<header>HEADER</header><footer>FOOTER</footer><aside>ASIDE</aside>
			<style>.x{color:red}</style><noscript>NOSCRIPT</noscript>
			<iframe src="https://ads.example.com"></iframe>
			<svg><text>SVGTEXT</text></svg>
			<form><input value="INPUT"><button>BUTTON</button>
			<select><option>OPTION</option></select><textarea>TEXTAREA</textarea></form>
			<p>Inhoud</p>
		</body>`

		cleaned, _, err := goquery.NewSanitizer().Sanitize(html)

		require.NoError(t, err)
		for _, s := range []string{"HEADER", "FOOTER", "ASIDE", "color:red", "NOSCRIPT", "ads.example.com", "SVGTEXT", "INPUT", "BUTTON", "OPTION", "TEXTAREA"} {
			assert.NotContains(t, cleaned, s)
		}
		assert.Contains(t, cleaned, "Inhoud")
	})

	t.Run("removes comments", func(t *testing.T) {
		t.Parallel()

		cleaned, _, err := goquery.NewSanitizer().Sanitize(`<body><!-- tracking pixel --><p>Tekst</p></body>`)

		require.NoError(t, err)
		assert.NotContains(t, cleaned, "tracking pixel")
	})

	t.Run("removes hidden attribute and case variants of display none", func(t *testing.T) {
		t.Parallel()

		html := `<body>
			<div hidden>ATTR-HIDDEN</div>
			<span style="color:red; DISPLAY :  NONE">STYLE-HIDDEN</span>
			<span style="display:block">SHOWN</span>
		</body>`

		cleaned, _, err := goquery.NewSanitizer().Sanitize(html)

		require.NoError(t, err)
		assert.NotContains(t, cleaned, "ATTR-HIDDEN")
		assert.NotContains(t, cleaned, "STYLE-HIDDEN")
		assert.Contains(t, cleaned, "SHOWN")
	})

	t.Run("captures title before removal", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>  Top Espressomachines | Site  </title></head><body><p>x</p></body></html>`

		cleaned, title, err := goquery.NewSanitizer().Sanitize(html)

		require.NoError(t, err)
		assert.Equal(t, "Top Espressomachines | Site", title)
		assert.NotContains(t, cleaned, "<title>")
	})

	t.Run("missing title is empty", func(t *testing.T) {
		t.Parallel()

		_, title, err := goquery.NewSanitizer().Sanitize(`<body><p>x</p></body>`)

		require.NoError(t, err)
		assert.Empty(t, title)
	})

	t.Run("prefers main over article and body", func(t *testing.T) {
		t.Parallel()

		html := `<body><div>OUTSIDE</div><article>ARTICLE</article><main><p>MAIN</p></main></body>`

		cleaned, _, err := goquery.NewSanitizer().Sanitize(html)

		require.NoError(t, err)
		assert.Equal(t, "<main><p>MAIN</p></main>", cleaned)
	})

	t.Run("falls back to article", func(t *testing.T) {
		t.Parallel()

		html := `<body><div>OUTSIDE</div><article><p>ARTICLE</p></article></body>`

		cleaned, _, err := goquery.NewSanitizer().Sanitize(html)

		require.NoError(t, err)
		assert.Equal(t, "<article><p>ARTICLE</p></article>", cleaned)
	})

	t.Run("falls back to body", func(t *testing.T) {
		t.Parallel()

		cleaned, _, err := goquery.NewSanitizer().Sanitize(`<p>Alleen tekst</p>`)

		require.NoError(t, err)
		assert.Equal(t, "<body><p>Alleen tekst</p></body>", cleaned)
	})

	t.Run("main inside stripped chrome is not selected", func(t *testing.T) {
		t.Parallel()

		html := `<body><aside><main>SIDEBAR</main></aside><article>REAL</article></body>`

		cleaned, _, err := goquery.NewSanitizer().Sanitize(html)

		require.NoError(t, err)
		assert.Equal(t, "<article>REAL</article>", cleaned)
	})

	t.Run("is deterministic across concurrent calls", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>T</title></head><body><main><h1>Koffie</h1><script>x()</script><p>Tekst</p></main></body></html>`
		s := goquery.NewSanitizer()
		want, _, err := s.Sanitize(html)
		require.NoError(t, err)

		var wg sync.WaitGroup
		results := make([]string, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _, _ = s.Sanitize(html)
			}(i)
		}
		wg.Wait()

		for _, got := range results {
			assert.Equal(t, want, got)
		}
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, _, err := goquery.NewSanitizer().Sanitize("   ")

		require.Error(t, err)
		assert.Equal(t, listicle.EINVALID, listicle.ErrorCode(err))
	})
}
