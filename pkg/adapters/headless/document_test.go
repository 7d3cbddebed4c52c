package headless_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veltran/swoop/pkg/adapters/headless"
	"github.com/veltran/swoop/pkg/domain"
)

const homePage = `<!DOCTYPE html>
<html>
<head><title>Home</title></head>
<body>
	<main id="swoop" class="transition-fade"><h1>Home</h1></main>
	<div class="transition-fade">secondary</div>
	<section id="faq">questions</section>
</body>
</html>`

func newDocument(t *testing.T, opts ...headless.Option) *headless.Document {
	t.Helper()
	doc, err := headless.NewDocument(homePage, opts...)
	require.NoError(t, err)
	return doc
}

func TestDocument_TitleAndQuery(t *testing.T) {
	doc := newDocument(t)

	assert.Equal(t, "Home", doc.Title())
	assert.Len(t, doc.Query(".transition-fade"), 2)
	assert.Len(t, doc.Query("#swoop"), 1)
	assert.Empty(t, doc.Query(".missing"))

	doc.SetTitle("Changed")
	assert.Equal(t, "Changed", doc.Title())
}

func TestDocument_Classes(t *testing.T) {
	doc := newDocument(t)

	doc.AddClass(domain.ClassChanging, domain.ClassLeaving)
	assert.True(t, doc.HasClass(domain.ClassChanging))
	assert.True(t, doc.HasClass(domain.ClassLeaving))

	doc.RemoveClass(domain.ClassLeaving)
	assert.False(t, doc.HasClass(domain.ClassLeaving))
	assert.True(t, doc.HasClass(domain.ClassChanging))
}

func TestDocument_ReplaceContent(t *testing.T) {
	doc := newDocument(t)

	err := doc.ReplaceContent(domain.Block{
		Container: "#swoop",
		HTML:      "<h1>About</h1><p>new content</p>",
	})
	require.NoError(t, err)

	content := doc.ContentOf("#swoop")
	assert.Contains(t, content, "<h1>About</h1>")
	assert.Contains(t, content, "<p>new content</p>")
	assert.NotContains(t, content, "Home")
}

func TestDocument_ContentOfMissingSelector(t *testing.T) {
	doc := newDocument(t)

	assert.Empty(t, doc.ContentOf("#ghost"))
	assert.Empty(t, doc.ContentOf(".nope"))
	assert.Empty(t, doc.ContentOf(""))
}

func TestDocument_ReplaceContentMissingContainer(t *testing.T) {
	doc := newDocument(t)

	err := doc.ReplaceContent(domain.Block{Container: "#ghost", HTML: "<p>x</p>"})
	assert.Error(t, err)
}

func TestDocument_TransitionEndFiresAfterDuration(t *testing.T) {
	doc := newDocument(t, headless.WithTransitionDuration(".transition-fade", 30*time.Millisecond))

	els := doc.Query(".transition-fade")
	require.Len(t, els, 2)

	el := els[0]
	assert.Equal(t, 30*time.Millisecond, el.TransitionDuration())

	start := time.Now()
	select {
	case <-el.TransitionEnd():
	case <-time.After(time.Second):
		t.Fatal("transition-end never fired")
	}
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
}

func TestDocument_NoTransitionResolvesImmediately(t *testing.T) {
	doc := newDocument(t)

	els := doc.Query("#faq")
	require.Len(t, els, 1)
	assert.Zero(t, els[0].TransitionDuration())

	select {
	case <-els[0].TransitionEnd():
	default:
		t.Fatal("element without transition should have a closed channel")
	}
}

func TestDocument_Scrolls(t *testing.T) {
	doc := newDocument(t)

	doc.ScrollToTop()
	assert.True(t, doc.ScrollTo("faq"))
	assert.False(t, doc.ScrollTo("nope"))

	assert.Equal(t, []string{"", "faq"}, doc.Scrolls())
}

func TestHistory_PushReplaceBackForward(t *testing.T) {
	h := headless.NewHistory("https://example.com/")

	assert.Equal(t, "https://example.com/", h.Current())

	h.Push("https://example.com/a")
	h.Push("https://example.com/b")
	assert.Equal(t, "https://example.com/b", h.Current())
	assert.Equal(t, 3, h.Len())

	entry, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/a", entry.URL)
	assert.True(t, entry.Controlled)

	// Pushing after going back discards the forward entries.
	h.Push("https://example.com/c")
	_, ok = h.Forward()
	assert.False(t, ok)
	assert.Equal(t, 3, h.Len())

	h.Replace("https://example.com/c2")
	assert.Equal(t, "https://example.com/c2", h.Current())
	assert.Equal(t, 3, h.Len())

	// Initial entry is foreign.
	entries := h.Entries()
	assert.False(t, entries[0].Controlled)
}
