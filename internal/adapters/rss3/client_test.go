package rss3

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	perr "github.com/benya7/rss3-widget/internal/platform/errors"
	"github.com/benya7/rss3-widget/internal/platform/testkit"
)

const pageJSON = `{
  "total": 2,
  "cursor": "c-1",
  "result": [
    {
      "address_from": "0xaaa",
      "address_to": "0xbbb",
      "network": "ethereum",
      "tag": "transaction",
      "type": "transfer",
      "hash": "0xh1",
      "timestamp": "2022-10-01T10:00:00Z",
      "actions": [
        {"address_from": "0xaaa", "address_to": "0xbbb", "tag": "transaction", "type": "transfer",
         "metadata": {"symbol": "ETH", "value_display": "1.5"}}
      ]
    }
  ]
}`

func newTestClient(t *testing.T, h http.HandlerFunc, o Options) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	o.BaseURL = srv.URL + "/v1/"
	return NewClient(o)
}

func TestNotesByAddressEncodesRepeatedKeys(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = io.WriteString(w, pageJSON)
	}, Options{})

	page, err := c.NotesByAddress(context.Background(), "0xaaa", NotesParams{
		Network: []string{"ethereum", "polygon"},
		Tag:     []string{"social"},
		Limit:   10,
		Cursor:  "prev",
	})
	if err != nil {
		t.Fatalf("NotesByAddress: %v", err)
	}
	if gotPath != "/v1/notes/0xaaa" {
		t.Fatalf("path = %q", gotPath)
	}
	if !reflect.DeepEqual(gotQuery["network"], []string{"ethereum", "polygon"}) {
		t.Fatalf("network = %v", gotQuery["network"])
	}
	if gotQuery["limit"][0] != "10" || gotQuery["cursor"][0] != "prev" {
		t.Fatalf("query = %v", gotQuery)
	}
	if _, ok := gotQuery["platform"]; ok {
		t.Fatalf("empty platform filter should be omitted")
	}
	if page.Total != 2 || page.Cursor != "c-1" || len(page.Result) != 1 {
		t.Fatalf("page = %+v", page)
	}
	if a, ok := page.Result[0].Primary(); !ok || a.Metadata == nil {
		t.Fatalf("primary action metadata not decoded")
	}
}

func TestNotesByAddressListPostsBody(t *testing.T) {
	var body notesListBody
	var method, ctype string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		ctype = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"total":0,"result":[]}`)
	}, Options{})

	_, err := c.NotesByAddressList(context.Background(), []string{"0xa", "0xb"}, NotesParams{
		Platform: []string{"Crossbell"},
		Limit:    5,
	})
	if err != nil {
		t.Fatalf("NotesByAddressList: %v", err)
	}
	if method != http.MethodPost || ctype != "application/json" {
		t.Fatalf("method=%s content-type=%s", method, ctype)
	}
	if !reflect.DeepEqual(body.Address, []string{"0xa", "0xb"}) || body.Limit != 5 {
		t.Fatalf("body = %+v", body)
	}
	if !reflect.DeepEqual(body.Platform, []string{"Crossbell"}) {
		t.Fatalf("platform = %v", body.Platform)
	}
}

func TestBearerToken(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"total":0,"result":[]}`)
	}, Options{Token: func(context.Context) (string, error) { return "s3cret", nil }})

	if _, err := c.Profile(context.Background(), "0xaaa"); err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if auth != "Bearer s3cret" {
		t.Fatalf("Authorization = %q", auth)
	}
}

func TestNoTokenSkipsHeader(t *testing.T) {
	var seen bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, seen = r.Header["Authorization"]
		_, _ = io.WriteString(w, `{"total":0,"result":[]}`)
	}, Options{Debug: true})

	if _, err := c.Profile(context.Background(), "0xaaa"); err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if seen {
		t.Fatalf("Authorization header sent without a token")
	}
}

func TestStatusErrorCarriesBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"no such address"}`)
	}, Options{})

	_, err := c.NotesByAddress(context.Background(), "0xnope", NotesParams{})
	if err == nil {
		t.Fatalf("expected error")
	}
	se, ok := AsStatus(err)
	if !ok {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if se.Status != http.StatusNotFound || se.Body != `{"error":"no such address"}` {
		t.Fatalf("status error = %+v", se)
	}
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound false")
	}
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
	testkit.MustContain(t, err.Error(), "no such address")
}

func TestServerErrorIsUpstream(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, Options{})

	_, err := c.ProfilesByList(context.Background(), []string{"0xa"})
	if perr.CodeOf(err) != perr.ErrorCodeUpstream {
		t.Fatalf("code = %v (%v)", perr.CodeOf(err), err)
	}
	if !perr.Retryable(err) {
		t.Fatalf("5xx should be reported retryable")
	}
}

func TestTimeoutBoundsHungUpstream(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, Options{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := c.Profile(context.Background(), "0xa")
	if perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("code = %v (%v)", perr.CodeOf(err), err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("request outlived its timeout")
	}
}

func TestRedirectClassCountsAsSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}, Options{HTTPClient: &http.Client{Timeout: time.Second}})

	resp, err := c.do(context.Background(), "notes", http.MethodGet, "/notes/0xa", nil, nil)
	if err != nil {
		t.Fatalf("3xx should not be an error: %v", err)
	}
	_ = resp.Body.Close()
}

func TestInvalidJSONIsJSONError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	}, Options{})

	_, err := c.Profile(context.Background(), "0xa")
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
}

func TestRequiredArguments(t *testing.T) {
	c := NewClient(Options{})
	ctx := context.Background()
	if _, err := c.NotesByAddress(ctx, "", NotesParams{}); perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("empty address: %v", err)
	}
	if _, err := c.NotesByAddressList(ctx, nil, NotesParams{}); perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("empty list: %v", err)
	}
	if _, err := c.ProfilesByList(ctx, nil); perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("empty profiles list: %v", err)
	}
	if c.BaseURL() != baseURLDefault {
		t.Fatalf("BaseURL = %q", c.BaseURL())
	}
}

func TestNotesParamsExtended(t *testing.T) {
	q := NotesParams{IncludePoap: true, Refresh: true, Hash: "0xh", Type: []string{"post", "share"}}.Values()
	if q.Get("include_poap") != "true" || q.Get("refresh") != "true" || q.Get("hash") != "0xh" {
		t.Fatalf("values = %v", q)
	}
	if len(q["type"]) != 2 {
		t.Fatalf("type = %v", q["type"])
	}
	if q.Has("count_only") || q.Has("limit") {
		t.Fatalf("zero values should be omitted: %v", q)
	}
}

func TestPing(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusNotFound)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}, Options{})

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("4xx root should count as up: %v", err)
	}
	status.Store(http.StatusServiceUnavailable)
	if err := c.Ping(context.Background()); perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("Ping = %v", err)
	}
}
