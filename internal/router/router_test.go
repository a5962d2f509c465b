package router_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/adapters/crm/hubspot"
	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/router"
	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Fake HubSpot (custom object)
// -------------------------

const objectType = "2-56743582"

type fakeHubSpot struct {
	mu       sync.Mutex
	nextID   int
	items    []map[string]any // orden de inserción
	creates  int
	searches int

	failStatus int
	failBody   string
	delay      time.Duration
}

func (f *fakeHubSpot) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-r.Context().Done():
			return
		}
	}
	if r.Header.Get("Authorization") != "Bearer test-token" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"status":"error","category":"INVALID_AUTHENTICATION"}`)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	base := "/crm/v3/objects/" + objectType
	switch {
	case r.Method == http.MethodPost && r.URL.Path == base+"/search":
		f.searches++
		if f.failStatus != 0 {
			w.WriteHeader(f.failStatus)
			_, _ = io.WriteString(w, f.failBody)
			return
		}
		results := make([]any, 0, len(f.items))
		for i := len(f.items) - 1; i >= 0; i-- {
			results = append(results, f.items[i])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"total": len(results), "results": results})

	case r.Method == http.MethodPost && r.URL.Path == base:
		f.creates++
		if f.failStatus != 0 {
			w.WriteHeader(f.failStatus)
			_, _ = io.WriteString(w, f.failBody)
			return
		}
		var body struct {
			Properties map[string]string `json:"properties"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.nextID++
		props := map[string]any{
			"hs_createdate": fmt.Sprintf("2025-01-01T00:00:%02d.000Z", f.nextID),
		}
		for k, v := range body.Properties {
			props[k] = v
		}
		obj := map[string]any{"id": fmt.Sprint(f.nextID), "properties": props}
		f.items = append(f.items, obj)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(obj)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeHubSpot) counts() (creates, searches int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates, f.searches
}

func newApp(t *testing.T, fake *fakeHubSpot, timeout time.Duration) *httptest.Server {
	t.Helper()

	upstream := httptest.NewServer(fake)
	t.Cleanup(upstream.Close)

	repo, err := hubspot.NewClient(hubspot.Config{
		BaseURL:     upstream.URL,
		AccessToken: "test-token",
		ObjectType:  objectType,
		Timeout:     timeout,
	}, nil)
	require.NoError(t, err)

	view, err := web.NewRenderer()
	require.NoError(t, err)

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Repo:     repo,
		Renderer: view,
		AppTitle: "Integrating With HubSpot I Practicum",
	}))
	t.Cleanup(ts.Close)
	return ts
}

// noRedirect evita seguir el 302 para poder verificarlo.
var noRedirect = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
}

func get(t *testing.T, u string) (int, string) {
	t.Helper()
	res, err := noRedirect.Get(u)
	require.NoError(t, err)
	defer res.Body.Close()
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func submit(t *testing.T, baseURL string, form url.Values) *http.Response {
	t.Helper()
	res, err := noRedirect.PostForm(baseURL+"/update-cobj", form)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

// -------------------------
// Tests
// -------------------------

func TestHTTP_CreateThenList(t *testing.T) {
	fake := &fakeHubSpot{}
	ts := newApp(t, fake, time.Second)

	st, body := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, "No records yet.")
	assert.Contains(t, body, "<title>Homepage | Integrating With HubSpot I Practicum</title>")

	res := submit(t, ts.URL, url.Values{"name": {"  Milo  "}, "bio": {" naps "}, "species": {"dog"}})
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))

	res = submit(t, ts.URL, url.Values{"name": {"Luna"}})
	assert.Equal(t, http.StatusFound, res.StatusCode)

	creates, _ := fake.counts()
	assert.Equal(t, 2, creates)

	fake.mu.Lock()
	first := fake.items[0]["properties"].(map[string]any)
	second := fake.items[1]["properties"].(map[string]any)
	fake.mu.Unlock()
	assert.Equal(t, "Milo", first["name"])
	assert.Equal(t, "naps", first["bio"])
	assert.Equal(t, "", second["bio"])
	assert.Equal(t, "", second["species"])

	st, body = get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, st)
	luna := strings.Index(body, "Luna")
	milo := strings.Index(body, "Milo")
	require.True(t, luna >= 0 && milo >= 0, body)
	assert.Less(t, luna, milo, "newest first")

	// Sin escrituras en medio, el listado es idéntico.
	st2, body2 := get(t, ts.URL+"/")
	assert.Equal(t, st, st2)
	assert.Equal(t, body, body2)
}

func TestHTTP_BlankNameNeverReachesHubSpot(t *testing.T) {
	fake := &fakeHubSpot{}
	ts := newApp(t, fake, time.Second)

	res := submit(t, ts.URL, url.Values{"name": {"   "}, "bio": {"keep me"}, "species": {" cat "}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	b, _ := io.ReadAll(res.Body)
	body := string(b)
	assert.Contains(t, body, "Name is required.")
	assert.Contains(t, body, `value="   "`)
	assert.Contains(t, body, `value=" cat "`)
	assert.Contains(t, body, ">keep me</textarea>")

	creates, searches := fake.counts()
	assert.Zero(t, creates)
	assert.Zero(t, searches)
}

func TestHTTP_ListForbidden(t *testing.T) {
	fake := &fakeHubSpot{failStatus: http.StatusForbidden, failBody: `{"status":"error","category":"MISSING_SCOPES"}`}
	ts := newApp(t, fake, time.Second)

	st, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusInternalServerError, st)
	assert.Contains(t, body, "HubSpot API Error 403")
	assert.Contains(t, body, "MISSING_SCOPES")
	assert.Contains(t, body, "No records yet.")
}

func TestHTTP_CreateTimeoutKeepsValues(t *testing.T) {
	fake := &fakeHubSpot{delay: time.Second}
	ts := newApp(t, fake, 50*time.Millisecond)

	res := submit(t, ts.URL, url.Values{"name": {" Milo "}, "species": {"dog"}})
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	b, _ := io.ReadAll(res.Body)
	body := string(b)
	assert.Contains(t, body, "Request failed: ")
	assert.Contains(t, body, "Client.Timeout exceeded")
	assert.Contains(t, body, `value=" Milo "`)
	assert.Contains(t, body, `value="dog"`)
}

func TestHTTP_FormAndHealthAndCSS(t *testing.T) {
	ts := newApp(t, &fakeHubSpot{}, time.Second)

	st, body := get(t, ts.URL+"/update-cobj")
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, "<title>Update Custom Object Form | Integrating With HubSpot I Practicum</title>")
	assert.NotContains(t, body, `role="alert"`)

	st, body = get(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", body)

	st, _ = get(t, ts.URL+"/css/style.css")
	assert.Equal(t, http.StatusOK, st)
}
