package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"zoo-registry/internal/platform/logger"
	"zoo-registry/internal/router"
)

// captureLogger junta los mensajes de error para poder asertarlos.
type captureLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *captureLogger) With(map[string]any) logger.Logger       { return l }
func (l *captureLogger) Debug(string, map[string]any)            {}
func (l *captureLogger) Info(string, map[string]any)             {}
func (l *captureLogger) Warn(string, map[string]any)             {}
func (l *captureLogger) Error(msg string, _ map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func TestNewRouter_BadDSNFallsBackWithLoggedError(t *testing.T) {
	t.Setenv("DB_DSN", "host=127.0.0.1 port=1 user=nobody dbname=nothing sslmode=disable connect_timeout=1")

	log := &captureLogger{}
	h := router.NewRouter(router.Options{Logger: log})

	// La conexión falló pero el servicio sigue andando sobre memoria.
	ts := httptest.NewServer(h)
	defer ts.Close()
	st, _, _ := doReq(t, ts.URL, "GET", "/health", "", nil, nil)
	if st != http.StatusOK {
		t.Fatalf("expected healthy fallback, got %d", st)
	}

	log.mu.Lock()
	defer log.mu.Unlock()
	if len(log.errors) == 0 {
		t.Fatalf("expected the connection failure to be logged")
	}
	found := false
	for _, msg := range log.errors {
		if strings.Contains(msg, "postgres unavailable") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing fallback error, got %v", log.errors)
	}
}

func TestHTTP_EndToEnd_ZooLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	userID := "keeper-1"

	// 1) Crear zoo con dirección y un animal anidado
	zooPath := createZoo(t, ts.URL, userID, map[string]any{
		"designation": "Berlin Zoo",
		"entranceFee": "15.50",
		"open":        true,
		"homepage":    "https://berlin.example.org",
		"address": map[string]any{
			"country":     "Germany",
			"postalCode":  "10115",
			"street":      "Hauptstr.",
			"houseNumber": 3,
			"surname":     "Meyer",
		},
		"animals": []map[string]any{
			{"designation": "Lion", "species": "mammal", "weight": "190.5"},
		},
	})

	// 2) GET con animales: 200, ETag "0", un animal
	{
		st, hdr, body := doReq(t, ts.URL, "GET", zooPath+"?withAnimals=true", "", nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get zoo, got %d body=%s", st, string(body))
		}
		if etag := hdr.Get("ETag"); etag != `"0"` {
			t.Fatalf("expected ETag %q, got %q", `"0"`, etag)
		}
		var resp struct {
			Designation string `json:"designation"`
			Address     *struct {
				PostalCode string `json:"postalCode"`
			} `json:"address"`
			Animals []struct {
				Species string `json:"species"`
			} `json:"animals"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal zoo: %v body=%s", err, string(body))
		}
		if resp.Address == nil || resp.Address.PostalCode != "10115" {
			t.Fatalf("address missing: %s", string(body))
		}
		if len(resp.Animals) != 1 || resp.Animals[0].Species != "mammal" {
			t.Fatalf("animals missing: %s", string(body))
		}
	}

	// 3) GET condicional con la versión vigente: 304
	{
		st, _, _ := doReq(t, ts.URL, "GET", zooPath, "", map[string]string{"If-None-Match": `"0"`}, nil)
		if st != http.StatusNotModified {
			t.Fatalf("expected 304, got %d", st)
		}
	}

	// 4) PUT sin If-Match: 428
	{
		st, _, body := doReq(t, ts.URL, "PUT", zooPath, userID, nil, map[string]any{
			"designation": "Berlin Zoo",
		})
		if st != http.StatusPreconditionRequired {
			t.Fatalf("expected 428 without If-Match, got %d body=%s", st, string(body))
		}
	}

	// 5) PUT con token no numérico: 412
	{
		st, _, _ := doReq(t, ts.URL, "PUT", zooPath, userID, map[string]string{"If-Match": `"abc"`}, map[string]any{
			"designation": "Berlin Zoo",
		})
		if st != http.StatusPreconditionFailed {
			t.Fatalf("expected 412 for non-numeric token, got %d", st)
		}
	}

	// 6) PUT con la versión vigente: 204 y ETag nuevo
	{
		st, hdr, body := doReq(t, ts.URL, "PUT", zooPath, userID, map[string]string{"If-Match": `"0"`}, map[string]any{
			"designation": "Berlin Zoo",
			"entranceFee": "18.00",
			"open":        false,
			"homepage":    "https://berlin.example.org",
		})
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 update, got %d body=%s", st, string(body))
		}
		if etag := hdr.Get("ETag"); etag != `"1"` {
			t.Fatalf("expected ETag %q, got %q", `"1"`, etag)
		}
	}

	// 7) PUT con el token viejo: 412 y la versión vigente en el mensaje
	{
		st, _, body := doReq(t, ts.URL, "PUT", zooPath, userID, map[string]string{"If-Match": `"0"`}, map[string]any{
			"designation": "Berlin Zoo",
		})
		if st != http.StatusPreconditionFailed {
			t.Fatalf("expected 412 for stale token, got %d", st)
		}
		if !strings.Contains(string(body), "current version is 1") {
			t.Fatalf("body should carry current version: %s", string(body))
		}
	}

	// 8) PUT parcial: los campos omitidos conservan su valor
	{
		st, hdr, body := doReq(t, ts.URL, "PUT", zooPath, userID, map[string]string{"If-Match": `"1"`}, map[string]any{
			"entranceFee": "21.00",
		})
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 partial update, got %d body=%s", st, string(body))
		}
		if etag := hdr.Get("ETag"); etag != `"2"` {
			t.Fatalf("expected ETag %q, got %q", `"2"`, etag)
		}

		st, _, body = doReq(t, ts.URL, "GET", zooPath, "", nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get after partial update, got %d", st)
		}
		var resp struct {
			Designation string `json:"designation"`
			EntranceFee string `json:"entranceFee"`
			Homepage    string `json:"homepage"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal zoo: %v body=%s", err, string(body))
		}
		if fee, err := decimal.NewFromString(resp.EntranceFee); err != nil || !fee.Equal(decimal.NewFromInt(21)) {
			t.Fatalf("entranceFee not updated: %q", resp.EntranceFee)
		}
		if resp.Designation != "Berlin Zoo" || resp.Homepage != "https://berlin.example.org" {
			t.Fatalf("omitted fields were overwritten: %s", string(body))
		}
	}

	// 9) Crear otro zoo con la misma designation: 422
	{
		st, _, body := doReq(t, ts.URL, "POST", "/zoos", userID, nil, map[string]any{
			"designation": "Berlin Zoo",
			"address":     map[string]any{"country": "Germany", "postalCode": "10115", "street": "X"},
		})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 duplicate designation, got %d body=%s", st, string(body))
		}
	}

	// 10) Búsqueda por criterios
	{
		st, _, body := doReq(t, ts.URL, "GET", "/zoos?designation=berlin", "", nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 search, got %d body=%s", st, string(body))
		}
		var resp struct {
			Content       []json.RawMessage `json:"content"`
			TotalElements int64             `json:"totalElements"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal slice: %v body=%s", err, string(body))
		}
		if len(resp.Content) != 1 || resp.TotalElements != 1 {
			t.Fatalf("expected 1/1, got %d/%d", len(resp.Content), resp.TotalElements)
		}
	}

	// 11) Clave de búsqueda desconocida: 404
	{
		st, _, _ := doReq(t, ts.URL, "GET", "/zoos?color=green", "", nil, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown criteria key, got %d", st)
		}
	}

	// 12) DELETE: 204, después GET 404
	{
		st, _, _ := doReq(t, ts.URL, "DELETE", zooPath, userID, nil, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d", st)
		}
		st, _, _ = doReq(t, ts.URL, "GET", zooPath, "", nil, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
		st, _, _ = doReq(t, ts.URL, "DELETE", zooPath, userID, nil, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting twice, got %d", st)
		}
	}
}

func TestHTTP_AnimalFileUpload(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	userID := "keeper-1"

	// 1) Crear animal suelto
	st, hdr, body := doReq(t, ts.URL, "POST", "/animals", userID, nil, map[string]any{
		"designation": "Nemo",
		"species":     "fish",
		"weight":      "0.250",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}
	animalPath := hdr.Get("Location")
	if animalPath == "" {
		t.Fatalf("create animal: missing Location header")
	}

	// 2) Sin archivo todavía: 404
	{
		st, _, _ := doReq(t, ts.URL, "GET", animalPath+"/file", "", nil, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 before upload, got %d", st)
		}
	}

	// 3) Subir archivo (multipart): 204
	uploadFile(t, ts.URL, animalPath, userID, "nemo.png", "image/png", []byte("png-bytes"))

	// 4) Descargarlo de vuelta
	{
		st, hdr, body := doReq(t, ts.URL, "GET", animalPath+"/file", "", nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 download, got %d", st)
		}
		if ct := hdr.Get("Content-Type"); ct != "image/png" {
			t.Fatalf("expected image/png, got %q", ct)
		}
		if string(body) != "png-bytes" {
			t.Fatalf("payload mismatch: %q", string(body))
		}
	}

	// 5) Reemplazar y verificar que queda solo el último
	uploadFile(t, ts.URL, animalPath, userID, "nemo.jpg", "image/jpeg", []byte("jpeg-bytes"))
	{
		st, _, body := doReq(t, ts.URL, "GET", animalPath+"/file", "", nil, nil)
		if st != http.StatusOK || string(body) != "jpeg-bytes" {
			t.Fatalf("replace failed: st=%d body=%q", st, string(body))
		}
	}

	// 6) Los metadatos del archivo viajan con el animal
	{
		st, _, body := doReq(t, ts.URL, "GET", animalPath, "", nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get animal, got %d", st)
		}
		var resp struct {
			Version int64 `json:"version"`
			File    *struct {
				Filename string `json:"filename"`
				Mimetype string `json:"mimetype"`
			} `json:"file"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal animal: %v body=%s", err, string(body))
		}
		if resp.File == nil || resp.File.Filename != "nemo.jpg" || resp.File.Mimetype != "image/jpeg" {
			t.Fatalf("file metadata missing: %s", string(body))
		}
		// cada upload sube la versión del animal
		if resp.Version != 2 {
			t.Fatalf("expected animal version 2, got %d", resp.Version)
		}
	}
}

func TestHTTP_WritesRequireIdentity(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// sin X-Debug-User-ID no hay claims => 401 en escrituras
	st, _, _ := doReq(t, ts.URL, "POST", "/zoos", "", nil, map[string]any{
		"designation": "Berlin Zoo",
		"address":     map[string]any{"country": "Germany", "postalCode": "10115", "street": "X"},
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 create without identity, got %d", st)
	}

	// las lecturas son públicas
	st, _, _ = doReq(t, ts.URL, "GET", "/zoos/1", "", nil, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 public read, got %d", st)
	}
}

func createZoo(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, hdr, body := doReq(t, baseURL, "POST", "/zoos", userID, nil, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create zoo, got %d body=%s", st, string(body))
	}
	loc := hdr.Get("Location")
	if loc == "" {
		t.Fatalf("create zoo: missing Location header")
	}
	return loc
}

func uploadFile(t *testing.T, baseURL, animalPath, userID, filename, mimetype string, data []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	partHdr := make(textproto.MIMEHeader)
	partHdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	partHdr.Set("Content-Type", mimetype)
	part, err := mw.CreatePart(partHdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, err := http.NewRequest("PUT", baseURL+animalPath+"/file", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Debug-User-ID", userID)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do upload: %v", err)
	}
	defer res.Body.Close()
	respBody, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 upload, got %d body=%s", res.StatusCode, string(respBody))
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, headers map[string]string, body any) (int, http.Header, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, res.Header, respBody
}
