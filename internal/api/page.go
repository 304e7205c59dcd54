package api

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var kioskPage []byte

// ServeKioskPage serves the full-screen player page that polls /api/display
func ServeKioskPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", kioskPage)
}

// SetupPageRoutes registers the kiosk page at the root
func SetupPageRoutes(router gin.IRoutes) {
	router.GET("/", ServeKioskPage)
}
