package httpmetrics_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/aalemi-dev/httpmetrics-lab/httpmetrics"
	"github.com/aalemi-dev/httpmetrics-lab/logger"
	"github.com/aalemi-dev/httpmetrics-lab/metrics"
)

func TestFXModule_ProvidesMiddleware(t *testing.T) {
	var mw *httpmetrics.Middleware

	app := fxtest.New(t,
		logger.FXModule,
		metrics.FXModule,
		httpmetrics.FXModule,
		fx.Provide(
			func() logger.Config { return logger.Config{Level: logger.Info} },
			func() metrics.Config { return metrics.Config{ServiceName: "fx-test"} },
			func() httpmetrics.Options {
				return httpmetrics.Options{Route: httpmetrics.Ptr("/prom"), Defaults: []string{"status"}}
			},
		),
		fx.Populate(&mw),
	)

	app.RequireStart()
	defer app.RequireStop()

	serve(mw.Wrap(okHandler), http.MethodGet, "/a")
	body := serve(mw.Wrap(okHandler), http.MethodGet, "/prom").Body.String()

	assert.Contains(t, body, `restify_status_codes{service="fx-test",status_code="200"} 1`)
}
