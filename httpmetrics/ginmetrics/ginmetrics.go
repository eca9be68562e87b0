// Package ginmetrics plugs an httpmetrics.Middleware into a gin engine.
//
// gin resolves the route before middleware runs, so the declared pattern
// ("/users/:id") is read from gin.Context.FullPath and Options.Router is not
// consulted. Register the handler with engine.Use so it also sees requests
// that match no route, including the exposition route.
package ginmetrics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aalemi-dev/httpmetrics-lab/httpmetrics"
)

// Handler returns a gin middleware measuring requests with mw.
//
// Example:
//
//	engine := gin.New()
//	mw, err := httpmetrics.New(httpmetrics.Options{Exclude: "/healthz"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine.Use(ginmetrics.Handler(mw), gin.Recovery())
func Handler(mw *httpmetrics.Middleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mw.IsExpositionPath(c.Request.URL.Path) {
			mw.ServeExposition(c.Writer, c.Request)
			c.Abort()
			return
		}

		fullPath := c.FullPath()
		t := mw.Track(c.Request, httpmetrics.Route{Path: fullPath}, fullPath != "")
		if t == nil {
			c.Next()
			return
		}

		completed := false
		defer func() {
			if !completed {
				t.Finish(abortStatus(c))
			}
		}()

		c.Next()
		completed = true
		t.Finish(c.Writer.Status())
	}
}

func abortStatus(c *gin.Context) int {
	if c.Writer.Written() {
		return c.Writer.Status()
	}
	return http.StatusInternalServerError
}
