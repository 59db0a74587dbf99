package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestRouterSetup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("registers routes under versioned prefix", func(t *testing.T) {
		engine := gin.New()

		group := NewDomainGroup("bundles", "/bundles").
			GET("", okHandler).
			POST("", okHandler).
			GET("/:id", okHandler).
			PUT("/:id", okHandler).
			DELETE("/:id", okHandler)

		NewRouter(engine).Register(group).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bundles", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/bundles/abc", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("honors custom api version", func(t *testing.T) {
		engine := gin.New()

		group := NewDomainGroup("catalog", "/catalog").GET("/candidates", okHandler)
		NewRouter(engine, WithAPIVersion("v2")).Register(group).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/catalog/candidates", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/candidates", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("applies group middleware", func(t *testing.T) {
		engine := gin.New()

		called := false
		group := NewDomainGroup("bundles", "/bundles").
			Use(func(c *gin.Context) { called = true; c.Next() }).
			GET("", okHandler)
		NewRouter(engine).Register(group).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bundles", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
	})

	t.Run("exposes name and prefix", func(t *testing.T) {
		group := NewDomainGroup("bundles", "/bundles")
		assert.Equal(t, "bundles", group.Name())
		assert.Equal(t, "/bundles", group.Prefix())
	})
}
