package middlewares_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TARUN062005/MERNNETFLIX/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func TestMaxBodyBytesRejectsDeclaredOversize(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.MaxBodyBytes(16))
	r.POST("/write", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	big := bytes.NewBufferString(`{"payload": "` + strings.Repeat("x", 64) + `"}`)

	req := httptest.NewRequest(http.MethodPost, "/write", big)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("got status %d, want 413, body=%s", w.Code, w.Body.String())
	}

	small := bytes.NewBufferString(`{"ok": true}`)

	req = httptest.NewRequest(http.MethodPost, "/write", small)
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d for a body under the cap, want 200", w.Code)
	}
}
