package pkgrouter

import (
	"context"
	"mime"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestChainOrder(t *testing.T) {
	order := make([]string, 0, 3)

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("mw1"), mw("mw2"))

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if !reflect.DeepEqual(order, []string{"mw1", "mw2", "handler"}) {
		t.Fatalf("unexpected order: %#v", order)
	}
}

func TestRouterTracksRouteAndWritesRaw(t *testing.T) {
	router := NewRouter(nil)

	var route string
	router.GET("/files/:name", func(ctx context.Context, r *http.Request) (any, error) {
		route = GetRoute(ctx)
		return &Raw{ContentType: "text/csv", Filename: "table.csv", Body: []byte("a,b\n")}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/files/table.csv", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if route != "/files/:name" {
		t.Fatalf("expected route pattern, got %q", route)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("unexpected content type: %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename=table.csv` {
		t.Fatalf("unexpected disposition: %q", got)
	}
	if got := rec.Body.String(); got != "a,b\n" {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestContentDispositionQuotesFilename(t *testing.T) {
	cases := map[string]string{
		"table.csv":          `attachment; filename=table.csv`,
		`my "best" data.csv`: `attachment; filename="my \"best\" data.csv"`,
		"données.xlsx":       `attachment; filename*=utf-8''donn%C3%A9es.xlsx`,
	}

	for name, want := range cases {
		if got := contentDisposition(name); got != want {
			t.Fatalf("filename %q: expected %q, got %q", name, want, got)
		}

		_, params, err := mime.ParseMediaType(contentDisposition(name))
		if err != nil {
			t.Fatalf("filename %q: header does not parse: %v", name, err)
		}
		if params["filename"] != name {
			t.Fatalf("filename %q: parsed back as %q", name, params["filename"])
		}
	}
}

func TestRouterNilResponseIsNoContent(t *testing.T) {
	router := NewRouter(nil)
	router.POST("/noop", func(ctx context.Context, r *http.Request) (any, error) {
		return nil, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/noop", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}
