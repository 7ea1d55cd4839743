package files_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"synthdata-backend/internal/shared/config"
	"synthdata-backend/internal/shared/server"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return server.NewRouter(config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		TokenTTL:        time.Hour,
	})
}

func signupToken(t *testing.T, router *gin.Engine, email, username string) string {
	t.Helper()
	body := `{"email":"` + email + `","username":"` + username + `","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("signup: expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	return out.AccessToken
}

func generateFile(t *testing.T, router *gin.Engine, token string) string {
	t.Helper()
	body := `{"domain":"finance","num_samples":3,"format":"json"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate/tabular", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("generate: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	fileID := resp.Header().Get("X-File-Id")
	if fileID == "" {
		t.Fatalf("expected X-File-Id header")
	}
	return fileID
}

func TestDownloadIncrementsCounter(t *testing.T) {
	router := newTestRouter(t)
	token := signupToken(t, router, "dl@example.com", "downloader")
	fileID := generateFile(t, router, token)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/files/"+fileID+"/download", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("download %d: expected status 200, got %d: %s", i, resp.Code, resp.Body.String())
		}
		if got := resp.Header().Get("X-File-Id"); got != fileID {
			t.Fatalf("expected X-File-Id %s, got %s", fileID, got)
		}
		if cd := resp.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
			t.Fatalf("expected attachment disposition, got %q", cd)
		}
		if resp.Body.Len() == 0 {
			t.Fatalf("expected file content")
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("list: expected status 200, got %d", resp.Code)
	}
	var list []struct {
		ID            string `json:"id"`
		DownloadCount int64  `json:"downloadCount"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 file, got %d", len(list))
	}
	if list[0].DownloadCount != 3 {
		t.Fatalf("expected download count 3, got %d", list[0].DownloadCount)
	}
}

func TestDownloadForeignFileIsNotFound(t *testing.T) {
	router := newTestRouter(t)
	ownerToken := signupToken(t, router, "owner@example.com", "owner")
	otherToken := signupToken(t, router, "other@example.com", "other")
	fileID := generateFile(t, router, ownerToken)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/"+fileID+"/download", nil)
	req.Header.Set("Authorization", "Bearer "+otherToken)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "not_found") {
		t.Fatalf("expected not_found code, got %s", resp.Body.String())
	}

	// Same status for a file that does not exist at all.
	reqMissing := httptest.NewRequest(http.MethodGet, "/api/v1/files/no-such-file/download", nil)
	reqMissing.Header.Set("Authorization", "Bearer "+otherToken)
	respMissing := httptest.NewRecorder()
	router.ServeHTTP(respMissing, reqMissing)

	if respMissing.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for absent file, got %d", respMissing.Code)
	}
}

func TestDeleteThenRepeatDelete(t *testing.T) {
	router := newTestRouter(t)
	token := signupToken(t, router, "del@example.com", "deleter")
	fileID := generateFile(t, router, token)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+fileID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("delete: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	reqAgain := httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+fileID, nil)
	reqAgain.Header.Set("Authorization", "Bearer "+token)
	respAgain := httptest.NewRecorder()
	router.ServeHTTP(respAgain, reqAgain)

	if respAgain.Code != http.StatusNotFound {
		t.Fatalf("repeat delete: expected status 404, got %d", respAgain.Code)
	}

	// The deleted file no longer downloads either.
	reqDl := httptest.NewRequest(http.MethodGet, "/api/v1/files/"+fileID+"/download", nil)
	reqDl.Header.Set("Authorization", "Bearer "+token)
	respDl := httptest.NewRecorder()
	router.ServeHTTP(respDl, reqDl)

	if respDl.Code != http.StatusNotFound {
		t.Fatalf("download after delete: expected status 404, got %d", respDl.Code)
	}
}

func TestStatsReflectsActivity(t *testing.T) {
	router := newTestRouter(t)
	token := signupToken(t, router, "stats@example.com", "stats")

	fileID := generateFile(t, router, token)
	generateFile(t, router, token)

	reqDl := httptest.NewRequest(http.MethodGet, "/api/v1/files/"+fileID+"/download", nil)
	reqDl.Header.Set("Authorization", "Bearer "+token)
	respDl := httptest.NewRecorder()
	router.ServeHTTP(respDl, reqDl)
	if respDl.Code != http.StatusOK {
		t.Fatalf("download: expected status 200, got %d", respDl.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("stats: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var stats struct {
		TotalFiles       int64            `json:"total_files"`
		TotalDownloads   int64            `json:"total_downloads"`
		TotalGenerations int64            `json:"total_generations"`
		ByKind           map[string]int64 `json:"by_kind"`
		ByFormat         map[string]int64 `json:"by_format"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalFiles != 2 {
		t.Fatalf("expected 2 files, got %d", stats.TotalFiles)
	}
	if stats.TotalDownloads != 1 {
		t.Fatalf("expected 1 download, got %d", stats.TotalDownloads)
	}
	if stats.TotalGenerations != 2 {
		t.Fatalf("expected 2 generations, got %d", stats.TotalGenerations)
	}
	if stats.ByKind["tabular"] != 2 {
		t.Fatalf("unexpected by_kind: %v", stats.ByKind)
	}
	if stats.ByFormat["json"] != 2 {
		t.Fatalf("unexpected by_format: %v", stats.ByFormat)
	}
}
