package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stwalsh4118/hypescreen/internal/logger"
)

func setupLoggedRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.InitWithWriter(buf, "info", false)

	router := gin.New()
	router.Use(RequestLogger("/api/display"))
	router.GET("/api/display", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return router
}

func TestRequestLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		name       string
		path       string
		wantLogged bool
		wantLevel  string
	}{
		{name: "regular request logged at info", path: "/api/health", wantLogged: true, wantLevel: `"level":"info"`},
		{name: "polling request hidden at info", path: "/api/display", wantLogged: false},
		{name: "server error always logged", path: "/api/boom", wantLogged: true, wantLevel: `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			router := setupLoggedRouter(&buf)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if !tt.wantLogged {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), `"path":"`+tt.path+`"`)
			assert.Contains(t, buf.String(), tt.wantLevel)
		})
	}
}
