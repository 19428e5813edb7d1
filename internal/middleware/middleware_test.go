package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		lambda string
		want   string
	}{
		{name: "inbound header wins", header: "abc", lambda: "lambda-id", want: "abc"},
		{name: "lambda request id", lambda: "lambda-id", want: "lambda-id"},
		{name: "generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID())
			router.GET("/", func(c *gin.Context) {
				c.String(http.StatusOK, c.GetString(RequestIDKey))
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			if tt.lambda != "" {
				ctx := lambdacontext.NewContext(req.Context(), &lambdacontext.LambdaContext{AwsRequestID: tt.lambda})
				req = req.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got == "" {
				t.Fatal("Expected X-Request-ID response header")
			}
			if got != rec.Body.String() {
				t.Errorf("Context request ID %q differs from header %q", rec.Body.String(), got)
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("Request ID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{name: "wildcard", allowed: []string{"*"}, origin: "https://a.example", method: http.MethodGet, wantOrigin: "*", wantStatus: http.StatusOK},
		{name: "listed origin", allowed: []string{"https://a.example"}, origin: "https://a.example", method: http.MethodGet, wantOrigin: "https://a.example", wantStatus: http.StatusOK},
		{name: "unlisted origin", allowed: []string{"https://a.example"}, origin: "https://b.example", method: http.MethodGet, wantOrigin: "", wantStatus: http.StatusOK},
		{name: "preflight", allowed: []string{"*"}, origin: "https://a.example", method: http.MethodOptions, wantOrigin: "*", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tt.allowed))
			router.Any("/", okHandler)

			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/hello", okHandler)
	router.GET("/swagger/index.html", okHandler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("Expected nosniff header")
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("Expected a Content-Security-Policy")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	if rec.Header().Get("Content-Security-Policy") != "" {
		t.Error("Swagger UI should not get a Content-Security-Policy")
	}
}

func TestRequestSizeLimit(t *testing.T) {
	router := gin.New()
	router.Use(RequestSizeLimit(8))
	router.POST("/", okHandler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Status = %d, want 413", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123")))
	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", rec.Code)
	}
}

func TestContentTypeValidation(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		want        int
	}{
		{name: "get skips", method: http.MethodGet, body: "{}", want: http.StatusOK},
		{name: "delete skips", method: http.MethodDelete, body: "{}", want: http.StatusOK},
		{name: "json with charset", method: http.MethodPost, contentType: "application/json; charset=utf-8", body: "{}", want: http.StatusOK},
		{name: "missing", method: http.MethodPost, body: "{}", want: http.StatusBadRequest},
		{name: "unsupported", method: http.MethodPost, contentType: "text/plain", body: "{}", want: http.StatusUnsupportedMediaType},
		{name: "empty body", method: http.MethodPost, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ContentTypeValidation())
			router.Any("/", okHandler)

			req := httptest.NewRequest(tt.method, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("Status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	logger, hook := test.NewNullLogger()

	router := gin.New()
	router.Use(RateLimiter(0.0001, 1, logger))
	router.GET("/", okHandler)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	if first.Code != http.StatusOK {
		t.Errorf("First request status = %d, want 200", first.Code)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("Second request status = %d, want 429", second.Code)
	}
	if entry := hook.LastEntry(); entry == nil || entry.Message != "Rate limit exceeded" {
		t.Error("Expected a rate limit warning")
	}
}

func TestErrorHandler(t *testing.T) {
	type payload struct {
		Name string `json:"name" binding:"required"`
	}

	router := gin.New()
	router.Use(RequestID(), ErrorHandler(quietLogger()))
	router.POST("/bind", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypeBind)
			return
		}
		c.Status(http.StatusOK)
	})
	router.GET("/private", func(c *gin.Context) {
		_ = c.Error(errors.New("database exploded"))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Bind error status = %d, want 400", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if len(resp.ValidationErrors) != 1 || resp.ValidationErrors[0].Tag != "required" {
		t.Errorf("Unexpected validation errors: %+v", resp.ValidationErrors)
	}
	if resp.RequestID == "" {
		t.Error("Expected request ID in error response")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Private error status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "exploded") {
		t.Error("Internal error details must not leak")
	}
}

func TestStructuredLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()

	router := gin.New()
	router.Use(RequestID(), StructuredLogger(logger))
	router.GET("/ok", okHandler)
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))
	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("Expected a log entry")
	}
	if entry.Level != logrus.InfoLevel || entry.Data["status_code"] != http.StatusOK {
		t.Errorf("Unexpected entry: level=%v data=%v", entry.Level, entry.Data)
	}
	if entry.Data["query"] != "x=1" || entry.Data["request_id"] == "" {
		t.Errorf("Expected query and request_id fields, got %v", entry.Data)
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	if hook.LastEntry().Level != logrus.WarnLevel {
		t.Errorf("4xx should log at warn, got %v", hook.LastEntry().Level)
	}
}

func TestAuthentication(t *testing.T) {
	auth := NewAuthService(&AuthConfig{JWTSecret: "secret", TokenDuration: time.Hour})
	other := NewAuthService(&AuthConfig{JWTSecret: "other"})

	valid, err := auth.GenerateToken("demo", []string{"writer"})
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}
	forged, err := other.GenerateToken("demo", nil)
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "Bearer " + valid, want: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, want: http.StatusOK},
		{name: "missing", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + forged, want: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not.a.token", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Authentication(auth, quietLogger()))
			router.POST("/", func(c *gin.Context) {
				c.String(http.StatusOK, c.GetString(SubjectKey))
			})

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("Status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusOK && rec.Body.String() != "demo" {
				t.Errorf("Subject = %q, want demo", rec.Body.String())
			}
		})
	}
}

func TestMetricsMiddlewareSkipsMetricsPath(t *testing.T) {
	router := gin.New()
	router.Use(Metrics())
	router.GET("/metrics", okHandler)
	router.GET("/hello", okHandler)

	for _, path := range []string{"/metrics", "/hello", "/nowhere"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil).WithContext(context.Background()))
		if path != "/nowhere" && rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}
