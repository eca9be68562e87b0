// httpmetrics-demo serves a small gorilla/mux API instrumented with the
// httpmetrics middleware.
//
// Usage:
//
//	# Serve on :8080 with metrics on /metrics
//	httpmetrics-demo serve
//
//	# Load middleware options from a file
//	httpmetrics-demo serve --config httpmetrics.yaml
//
//	# Check a configuration file without serving
//	httpmetrics-demo validate --config httpmetrics.yaml
package main

func main() {
	Execute()
}
