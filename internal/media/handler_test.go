package media

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(store objectStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/"), newTestService(store))
	return router
}

func TestSignedURLsEndpointReturnsPairsInOrder(t *testing.T) {
	router := newTestRouter(&fakeObjectStore{})

	body := `{"files":[{"filename":"a.png","contentType":"image/png"},{"filename":"b.jpg","contentType":"image/jpeg"}]}`
	req := httptest.NewRequest(http.MethodPost, "/media/signed-urls", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []struct {
		UploadURL string `json:"uploadUrl"`
		Key       string `json:"key"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(resp))
	}
	if !strings.HasSuffix(resp[0].Key, ".png") || !strings.HasSuffix(resp[1].Key, ".jpg") {
		t.Fatalf("response order not preserved: %q, %q", resp[0].Key, resp[1].Key)
	}
	if resp[0].UploadURL == "" {
		t.Fatalf("missing upload URL")
	}
}

func TestSignedURLsEndpointRejectsEmptyBatch(t *testing.T) {
	router := newTestRouter(&fakeObjectStore{})

	req := httptest.NewRequest(http.MethodPost, "/media/signed-urls", strings.NewReader(`{"files":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSignedURLsEndpointHidesSignerDetail(t *testing.T) {
	router := newTestRouter(&alwaysFailStore{})

	body := `{"files":[{"filename":"a.png","contentType":"image/png"}]}`
	req := httptest.NewRequest(http.MethodPost, "/media/signed-urls", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "signer unavailable") {
		t.Fatalf("internal error detail leaked: %s", rec.Body.String())
	}
}

func TestDeleteFilesEndpointAlwaysSucceedsForWellFormedRequest(t *testing.T) {
	store := &fakeObjectStore{removeErrFor: map[string]bool{"k1": true, "k2": true}}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/media/files?keys=k1,k2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 despite failed deletions, got %d", rec.Code)
	}
	if store.removeCount() != 2 {
		t.Fatalf("expected 2 delete attempts, got %d", store.removeCount())
	}
}

type alwaysFailStore struct {
	fakeObjectStore
}

func (f *alwaysFailStore) PresignHeader(ctx context.Context, method, bucketName, objectName string, expires time.Duration, reqParams url.Values, extraHeaders http.Header) (*url.URL, error) {
	return nil, errors.New("signer unavailable")
}

func TestDeleteFilesEndpointRequiresKeys(t *testing.T) {
	router := newTestRouter(&fakeObjectStore{})

	req := httptest.NewRequest(http.MethodDelete, "/media/files", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
