package finlogic

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestInfo(t *testing.T) {
	ds := testDataset(t)
	info, err := ds.Info()
	if err != nil {
		t.Fatalf("Info() failed: %v", err)
	}

	if got, want := info.AccountingEntries, len(ds.Entries()); got != want {
		t.Errorf("AccountingEntries = %d, want %d", got, want)
	}
	if got := info.Companies; got != 2 {
		t.Errorf("Companies = %d, want 2", got)
	}
	// PETRO publishes four statements (two annual, two quarterly) and
	// VALE one; the separate-method figures belong to an existing one.
	if got := info.Reports; got != 5 {
		t.Errorf("Reports = %d, want 5", got)
	}
	if info.FirstReport != a21 || info.LastReport != q923 {
		t.Errorf("report bounds = [%v, %v], want [%v, %v]", info.FirstReport, info.LastReport, a21, q923)
	}
	if info.MemoryUsage <= 0 {
		t.Errorf("MemoryUsage = %d, want a positive estimate", info.MemoryUsage)
	}
}

func TestInfoEmptyDataset(t *testing.T) {
	ds := newDataset(nil, nil, nil, 0)
	if _, err := ds.Info(); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("Info() = %v, want ErrEmptyDataset", err)
	}
}

func TestFetchLastUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"sha":"abc123","commit":{"committer":{"name":"ci","date":"2023-10-05T03:12:44Z"}}}]`)
	}))
	defer server.Close()

	got, err := fetchLastUpdate(server.Client(), server.URL)
	if err != nil {
		t.Fatalf("fetchLastUpdate failed: %v", err)
	}
	want := time.Date(2023, 10, 5, 3, 12, 44, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// errBody fails every read and records whether it was closed.
type errBody struct{ closed bool }

func (b *errBody) Read(p []byte) (int, error) { return 0, errors.New("connection reset") }
func (b *errBody) Close() error               { b.closed = true; return nil }

type stubTransport struct{ body *errBody }

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{StatusCode: 200, Body: s.body, Request: req}, nil
}

func TestFetchLastUpdateClosesBodyOnReadError(t *testing.T) {
	body := &errBody{}
	client := &http.Client{Transport: &stubTransport{body: body}}

	if _, err := fetchLastUpdate(client, "http://dataset.test/commits"); err == nil {
		t.Fatalf("fetchLastUpdate expected an error")
	}
	if !body.closed {
		t.Errorf("response body was not closed after a read error")
	}
}

func TestFetchLastUpdateBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"rate limited"}`)
	}))
	defer server.Close()

	if _, err := fetchLastUpdate(server.Client(), server.URL); err == nil {
		t.Errorf("expected an error on a non-commits payload")
	}
}
