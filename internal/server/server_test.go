package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/typescatter/pkg/scatter/sink"
	"github.com/matzehuels/typescatter/pkg/shapes"
)

type staticShapes struct{ lib *shapes.Library }

func (s staticShapes) Library() *shapes.Library { return s.lib }

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(opts...))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{`id="answerInput"`, `id="printBtn"`, `debounceMS`, ` 180 `, `Popup blocked`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestHealth(t *testing.T) {
	lib := &shapes.Library{Templates: []shapes.Template{{Name: "a"}, {Name: "b"}}}
	ts := newTestServer(t, WithShapes(staticShapes{lib}))
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out struct {
		Status    string `json:"status"`
		Version   string `json:"version"`
		Templates int    `json:"templates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Status != "ok" || out.Templates != 2 || out.Version == "" {
		t.Errorf("health = %+v", out)
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/api/render", "application/json", `{"text":"hello world","width":640}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out sink.Output
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Words) != 2 || out.Width != 640 {
		t.Errorf("words=%d width=%v", len(out.Words), out.Width)
	}
	if out.Seed == 0 || out.Seed > maxSeed+1 {
		t.Errorf("seed = %d", out.Seed)
	}
	if !strings.Contains(out.HTML, `class="answer-block"`) {
		t.Errorf("html = %q", out.HTML)
	}
}

func TestRenderBlank(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/api/render", "application/json", `{"text":"   "}`)
	var out sink.Output
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Words) != 0 || out.HTML != "" {
		t.Errorf("blank render = %+v", out)
	}
}

func TestRenderSeedReproducible(t *testing.T) {
	ts := newTestServer(t)
	body := `{"text":"same layout twice","width":500,"seed":77}`

	var a, b sink.Output
	_ = json.NewDecoder(post(t, ts.URL+"/api/render", "application/json", body).Body).Decode(&a)
	_ = json.NewDecoder(post(t, ts.URL+"/api/render", "application/json", body).Body).Decode(&b)

	if a.Seed != 77 || len(a.Words) != 3 {
		t.Fatalf("first render = %+v", a)
	}
	for i := range a.Words {
		if a.Words[i] != b.Words[i] {
			t.Errorf("word %d differs between renders with the same seed", i)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"malformed json", "application/json", `{"text":`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown field", "application/json", `{"txt":"x"}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"negative width", "application/json", `{"text":"x","width":-5}`, http.StatusBadRequest, "INVALID_WIDTH"},
		{"control chars", "application/json", `{"text":"a\u0000b"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"wrong content type", "text/plain", `hello`, http.StatusUnsupportedMediaType, "UNSUPPORTED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/render", tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var out errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Fatal(err)
			}
			if string(out.Code) != tt.code {
				t.Errorf("code = %q, want %q", out.Code, tt.code)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/render.svg?text=vector+words&width=300&seed=5")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(string(body), "<svg") || strings.Count(string(body), "<text ") != 2 {
		t.Errorf("body = %s", body)
	}

	resp2, err := http.Get(ts.URL + "/api/render.svg?text=x&width=wide")
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("bad width status = %d, want 400", resp2.StatusCode)
	}
}

func TestPrint(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/api/print", "application/json", `{"text":"print me","width":600,"seed":9}`)
	body, _ := io.ReadAll(resp.Body)
	doc := string(body)

	if !strings.HasPrefix(doc, "<!doctype html>") {
		t.Errorf("not a print document: %.60s", doc)
	}
	if !strings.Contains(doc, `<div class="print-canvas"><div class="answer-block"`) {
		t.Error("block markup missing")
	}
	if !strings.Contains(doc, "window.print()},350)") {
		t.Error("auto-print script missing")
	}
}

func TestPrintKeepsRenderedTemplateChoice(t *testing.T) {
	lib := &shapes.Library{ViewBox: "0 0 100 100", Templates: []shapes.Template{
		{Name: "circle", Markup: `<circle cx="50" cy="50" r="40"/>`},
	}}
	withShapes := newTestServer(t, WithShapes(staticShapes{lib}))
	without := newTestServer(t)

	var out sink.Output
	resp := post(t, withShapes.URL+"/api/render", "application/json", `{"text":"a b c","width":600,"seed":9}`)
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Templates == nil || !*out.Templates {
		t.Errorf("templates = %v, want true with a loaded library", out.Templates)
	}

	// The page rendered before the library loaded: printing must match that
	// layout, not a fresh one with shapes.
	const req = `{"text":"a b c","width":600,"seed":9,"templates":false}`
	pinned, _ := io.ReadAll(post(t, withShapes.URL+"/api/print", "application/json", req).Body)
	plain, _ := io.ReadAll(post(t, without.URL+"/api/print", "application/json", `{"text":"a b c","width":600,"seed":9}`).Body)
	if string(pinned) != string(plain) {
		t.Error("print with templates:false differs from the shapeless layout")
	}
	if strings.Contains(string(pinned), "<svg") {
		t.Error("print with templates:false drew shapes")
	}

	withLib, _ := io.ReadAll(post(t, withShapes.URL+"/api/print", "application/json", `{"text":"a b c","width":600,"seed":9,"templates":true}`).Body)
	unpinned, _ := io.ReadAll(post(t, withShapes.URL+"/api/print", "application/json", `{"text":"a b c","width":600,"seed":9}`).Body)
	if string(withLib) != string(unpinned) {
		t.Error("templates:true should lay out like a request without the flag")
	}
}

func TestRenderReportsNoTemplates(t *testing.T) {
	ts := newTestServer(t)
	var out sink.Output
	resp := post(t, ts.URL+"/api/render", "application/json", `{"text":"hello","width":600,"seed":3}`)
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Templates == nil || *out.Templates {
		t.Errorf("templates = %v, want false without a library", out.Templates)
	}
}
