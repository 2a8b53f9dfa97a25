package http

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestSplitCSV(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b", []string{"a", "b"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		if got := splitCSV(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitCSV(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestQuoteEndpoint_RejectsBadParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(nil, nil, nil, zerolog.Nop())
	router := NewRouter(handler, func(c *gin.Context) { c.Next() }, "test", nil)

	tests := []struct {
		name string
		url  string
	}{
		{name: "missing category", url: "/api/v1/pricing/quote?distance_km=50"},
		{name: "missing distance", url: "/api/v1/pricing/quote?category=citadine"},
		{name: "garbage distance", url: "/api/v1/pricing/quote?category=citadine&distance_km=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", tt.url, w.Code)
			}
		})
	}
}
