package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// registrarFunc adapts a function to RouteRegistrar, the way handlers
// implement it.
type registrarFunc func(rg *gin.RouterGroup)

func (f registrarFunc) RegisterRoutes(rg *gin.RouterGroup) { f(rg) }

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	loans := registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/loans", func(c *gin.Context) {
			c.String(http.StatusOK, "loans")
		})
	})

	r.Register(loans).Setup()

	req := httptest.NewRequest("GET", "/api/v2/loans", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterRegisterChain(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	loans := registrarFunc(func(rg *gin.RouterGroup) {
		loans := rg.Group("/loans")
		loans.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "loans list")
		})
		loans.POST("", func(c *gin.Context) {
			c.String(http.StatusCreated, "loan issued")
		})
	})
	books := registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/books/parties", func(c *gin.Context) {
			c.String(http.StatusOK, "parties")
		})
	})

	r.Register(loans).Register(books)
	assert.Len(t, r.registrars, 2)
	r.Setup()

	tests := []struct {
		method string
		path   string
		code   int
		body   string
	}{
		{"GET", "/api/v1/loans", http.StatusOK, "loans list"},
		{"POST", "/api/v1/loans", http.StatusCreated, "loan issued"},
		{"GET", "/api/v1/books/parties", http.StatusOK, "parties"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, tt.code, w.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.body, w.Body.String())
	}
}

func TestRouterSetupWithoutRegistrars(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/anything", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
