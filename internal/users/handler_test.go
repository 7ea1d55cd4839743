package users_test

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

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		TokenTTL:        time.Hour,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	} `json:"user"`
}

func signup(t *testing.T, router *gin.Engine, email, username, password string) tokenResponse {
	t.Helper()
	body := `{"email":"` + email + `","username":"` + username + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("signup: expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var out tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	return out
}

func TestSignupLoginMeFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := server.NewRouter(testConfig(t))

	created := signup(t, router, "alice@example.com", "alice", "password123")
	if created.AccessToken == "" {
		t.Fatalf("expected access_token")
	}
	if created.TokenType != "bearer" {
		t.Fatalf("expected token_type bearer, got %s", created.TokenType)
	}

	// Login with the same credentials.
	loginBody := `{"email":"alice@example.com","password":"password123"}`
	reqLogin := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(loginBody))
	reqLogin.Header.Set("Content-Type", "application/json")
	respLogin := httptest.NewRecorder()
	router.ServeHTTP(respLogin, reqLogin)

	if respLogin.Code != http.StatusOK {
		t.Fatalf("login: expected status 200, got %d: %s", respLogin.Code, respLogin.Body.String())
	}
	var logged tokenResponse
	if err := json.NewDecoder(respLogin.Body).Decode(&logged); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	// Fetch the profile with the issued token.
	reqMe := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	reqMe.Header.Set("Authorization", "Bearer "+logged.AccessToken)
	respMe := httptest.NewRecorder()
	router.ServeHTTP(respMe, reqMe)

	if respMe.Code != http.StatusOK {
		t.Fatalf("me: expected status 200, got %d: %s", respMe.Code, respMe.Body.String())
	}
	var me struct {
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(respMe.Body).Decode(&me); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if me.Email != "alice@example.com" || me.Username != "alice" {
		t.Fatalf("unexpected profile: %+v", me)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := server.NewRouter(testConfig(t))

	signup(t, router, "bob@example.com", "bobby", "password123")

	body := `{"email":"bob@example.com","password":"not-the-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "invalid_credentials") {
		t.Fatalf("expected invalid_credentials code, got %s", resp.Body.String())
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := server.NewRouter(testConfig(t))

	signup(t, router, "carol@example.com", "carol", "password123")

	body := `{"email":"carol@example.com","username":"caroline","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := server.NewRouter(testConfig(t))

	for _, header := range []string{"", "Bearer ", "Bearer not-a-real-token", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected status 401, got %d", header, resp.Code)
		}
	}
}
