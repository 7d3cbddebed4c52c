package swoop_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veltran/swoop"
	"github.com/veltran/swoop/pkg/adapters/headless"
	swoophttp "github.com/veltran/swoop/pkg/adapters/http"
	"github.com/veltran/swoop/pkg/domain"
	"github.com/veltran/swoop/pkg/plugins"
	"github.com/veltran/swoop/pkg/resolver"
)

func demoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(swoophttp.NewHandler(swoophttp.DemoSite()))
	t.Cleanup(srv.Close)
	return srv
}

func TestFacade_Integration(t *testing.T) {
	srv := demoServer(t)
	eng, err := swoop.New(srv.URL + "/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, eng.Navigate(ctx, "/about"))

	assert.Equal(t, "About", eng.Document().Title())
	assert.Equal(t, srv.URL+"/about", eng.History().Current())

	// The visited page is cached under its canonical URL.
	page, err := eng.Cache().Lookup(ctx, srv.URL+"/about")
	require.NoError(t, err)
	assert.Equal(t, "About", page.Title)
}

func TestFacade_FollowsServerRedirects(t *testing.T) {
	srv := demoServer(t)
	eng, err := swoop.New(srv.URL + "/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, eng.Navigate(ctx, "/about-us"))

	assert.Equal(t, srv.URL+"/about", eng.History().Current())
	_, err = eng.Cache().Lookup(ctx, srv.URL+"/about")
	assert.NoError(t, err)
}

func TestFacade_ClickDrivesVisit(t *testing.T) {
	srv := demoServer(t)
	eng, err := swoop.New(srv.URL + "/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, eng.Click(ctx, resolver.LinkClick{URL: "/contact"}))
	assert.Equal(t, "Contact", eng.Document().Title())

	// Modified clicks stay with the host environment.
	require.NoError(t, eng.Click(ctx, resolver.LinkClick{URL: "/about", Meta: true}))
	assert.Equal(t, "Contact", eng.Document().Title())
}

func TestFacade_PluginLifecycle(t *testing.T) {
	srv := demoServer(t)

	var mounted, unmounted bool
	probe := plugins.Func("probe",
		func(rt plugins.Runtime) error { mounted = true; return nil },
		func(rt plugins.Runtime) error { unmounted = true; return nil },
	)

	eng, err := swoop.New(srv.URL+"/", swoop.WithPlugins(probe))
	require.NoError(t, err)
	assert.True(t, mounted)
	assert.Equal(t, []string{"probe"}, eng.Plugins())

	require.NoError(t, eng.Destroy(context.Background()))
	assert.True(t, unmounted)
	assert.Empty(t, eng.Plugins())
}

func TestFacade_HooksObserveVisit(t *testing.T) {
	srv := demoServer(t)
	eng, err := swoop.New(srv.URL + "/")
	require.NoError(t, err)

	var seen []domain.HookName
	unsub := eng.Hooks().Notify(func(n swoop.Notification) {
		seen = append(seen, n.Hook)
	})
	defer unsub()

	require.NoError(t, eng.Navigate(context.Background(), "/about"))

	assert.Equal(t, domain.HookVisitStart, seen[0])
	assert.Equal(t, domain.HookVisitEnd, seen[len(seen)-1])
}

func TestFacade_FetchErrorSurfaces(t *testing.T) {
	srv := demoServer(t)
	eng, err := swoop.New(srv.URL + "/")
	require.NoError(t, err)

	err = eng.Navigate(context.Background(), "/nope")
	require.Error(t, err)
	assert.Equal(t, srv.URL+"/", eng.History().Current())
}

func TestRunner_ScriptedSession(t *testing.T) {
	srv := demoServer(t)
	eng, err := swoop.New(srv.URL + "/")
	require.NoError(t, err)

	script := strings.Join([]string{"/about", "/contact", "back", "exit"}, "\n") + "\n"
	var out strings.Builder
	runner := swoop.NewRunner()
	runner.Input = strings.NewReader(script)
	runner.Output = &out
	runner.Headless = true

	require.NoError(t, runner.Run(context.Background(), eng))

	assert.Contains(t, out.String(), "/about  About")
	assert.Contains(t, out.String(), "/contact  Contact")
	assert.Equal(t, srv.URL+"/about", eng.History().Current(), "back must land on the previous page")
}

func TestFacade_CustomHistory(t *testing.T) {
	srv := demoServer(t)
	hist := headless.NewHistory(srv.URL + "/")
	eng, err := swoop.New(srv.URL+"/", swoop.WithHistory(hist))
	require.NoError(t, err)

	require.NoError(t, eng.Navigate(context.Background(), "/about"))
	assert.Equal(t, 2, hist.Len())
}

func TestFacade_RejectsBadBaseURL(t *testing.T) {
	_, err := swoop.New("ftp://example.com/")
	require.Error(t, err)
	_, err = swoop.New("not a url")
	require.Error(t, err)
}

func ExampleEngine_Navigate() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Docs</title></head>`+
			`<body><main id="swoop" class="transition-fade"><h1>Docs</h1></main></body></html>`)
	}))
	defer srv.Close()

	eng, err := swoop.New(srv.URL + "/")
	if err != nil {
		panic(err)
	}
	if err := eng.Navigate(context.Background(), "/docs"); err != nil {
		panic(err)
	}
	fmt.Println(eng.Document().Title())
	// Output: Docs
}
