package generation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"synthdata-backend/internal/files"
	"synthdata-backend/internal/llm"
	localstore "synthdata-backend/internal/shared/storage/object/local"
	"synthdata-backend/internal/tabular"
)

func newHandlerRouter(t *testing.T, client llm.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &Service{
		Tabular: tabular.NewSynthesizer(),
		LLM:     client,
		Files:   files.NewMemoryRepo(),
		History: NewMemoryHistoryRepo(),
		Store:   localstore.New(t.TempDir()),
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestDomainsEndpoint(t *testing.T) {
	router := newHandlerRouter(t, llm.TemplateClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/generate/domains", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var out struct {
		TabularDomains []string `json:"tabular_domains"`
		ChatDomains    []string `json:"chat_domains"`
		EmailDomains   []string `json:"email_domains"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode domains: %v", err)
	}
	if len(out.TabularDomains) != 4 {
		t.Fatalf("expected 4 tabular domains, got %v", out.TabularDomains)
	}
	if len(out.ChatDomains) != 2 || len(out.EmailDomains) != 2 {
		t.Fatalf("unexpected chat/email domains: %v %v", out.ChatDomains, out.EmailDomains)
	}
}

func TestGenerateValidationReturns400(t *testing.T) {
	router := newHandlerRouter(t, llm.TemplateClient{})

	body := `{"domain":"finance","num_samples":999999,"format":"json"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate/tabular", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "validation_error") {
		t.Fatalf("expected validation_error code, got %s", resp.Body.String())
	}
}

func TestGeneratorFailureReturns502(t *testing.T) {
	router := newHandlerRouter(t, failingLLM{})

	body := `{"domain":"customer_support","topic":"orders","num_samples":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "generator_unavailable") {
		t.Fatalf("expected generator_unavailable code, got %s", resp.Body.String())
	}
}

func TestGenerateStreamsAttachment(t *testing.T) {
	router := newHandlerRouter(t, llm.TemplateClient{})

	body := `{"domain":"spam_detection","topic":"lottery","num_samples":1,"format":"json"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate/email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("X-File-Id") == "" {
		t.Fatalf("expected X-File-Id header")
	}
	if cd := resp.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("expected attachment disposition, got %q", cd)
	}

	var emails []struct {
		Domain  string `json:"domain"`
		Subject string `json:"subject"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		t.Fatalf("decode emails: %v", err)
	}
	if len(emails) != 1 || emails[0].Domain != "spam_detection" {
		t.Fatalf("unexpected emails: %+v", emails)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	router := newHandlerRouter(t, llm.TemplateClient{})

	body := `{"domain":"finance","num_samples":2,"format":"json"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate/tabular", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("generate: expected status 200, got %d", resp.Code)
	}

	reqHist := httptest.NewRequest(http.MethodGet, "/api/v1/generate/history", nil)
	respHist := httptest.NewRecorder()
	router.ServeHTTP(respHist, reqHist)

	if respHist.Code != http.StatusOK {
		t.Fatalf("history: expected status 200, got %d", respHist.Code)
	}
	var records []struct {
		DataKind   string `json:"dataKind"`
		Domain     string `json:"domain"`
		NumSamples int    `json:"numSamples"`
	}
	if err := json.NewDecoder(respHist.Body).Decode(&records); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(records) != 1 || records[0].DataKind != "tabular" || records[0].NumSamples != 2 {
		t.Fatalf("unexpected history: %+v", records)
	}
}
