package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestDescribe(t *testing.T) {
	e := echo.New()
	NewHandler("2.0").RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["version"] != "2.0" {
		t.Errorf("version = %v", body["version"])
	}
	endpoints := body["endpoints"].(map[string]interface{})
	for _, name := range []string{
		"search", "quick_search", "advanced_search", "provider_detail",
		"health_check", "states", "cities", "taxonomies",
		"specialty_groups", "specialty_classifications",
	} {
		if _, ok := endpoints[name]; !ok {
			t.Errorf("missing endpoint entry %q", name)
		}
	}
}

func TestSearchPage(t *testing.T) {
	e := echo.New()
	NewHandler("2.0").RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/search/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	for _, marker := range []string{"<form id=\"search-form\"", "/api/search/", "/api/states/"} {
		if !strings.Contains(rec.Body.String(), marker) {
			t.Errorf("page missing %q", marker)
		}
	}
}
