package animals

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"zoo-registry/internal/middleware"
)

func newTestServer() (*httptest.Server, *testRepo) {
	repo := newTestRepo()
	read := NewReadService(repo)
	write := NewWriteService(repo, read)

	r := chi.NewRouter()
	r.Use(middleware.AuthContext(nil))
	RegisterRoutes(r, read, write)

	return httptest.NewServer(r), repo
}

func TestCreateAnimalHandler_LocationCarriesGeneratedID(t *testing.T) {
	ts, _ := newTestServer()
	defer ts.Close()

	body := strings.NewReader(`{"designation":"Nemo","species":"fish","weight":"0.250"}`)
	req, err := http.NewRequest("POST", ts.URL+"/animals", body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Debug-User-ID", "keeper-1")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	loc := res.Header.Get("Location")
	if loc != "/animals/1" {
		t.Fatalf("expected Location /animals/1, got %q", loc)
	}

	// La Location tiene que ser usable tal cual.
	res2, err := http.Get(ts.URL + loc)
	if err != nil {
		t.Fatalf("follow location: %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 following Location, got %d", res2.StatusCode)
	}
	var resp struct {
		ID          int64  `json:"id"`
		Designation string `json:"designation"`
	}
	if err := json.NewDecoder(res2.Body).Decode(&resp); err != nil {
		t.Fatalf("decode animal: %v", err)
	}
	if resp.ID != 1 || resp.Designation != "Nemo" {
		t.Fatalf("unexpected animal behind Location: %+v", resp)
	}
}
