package metrics

// DefaultExpositionPath is the path served by the standalone exposition server.
const DefaultExpositionPath = "/metrics"

// Config defines how a Registry is built and, optionally, exposed on its own
// HTTP server in addition to any route served by the HTTP middleware.
type Config struct {
	// Address is the listen address of a standalone exposition server.
	//
	// Example values:
	//   - ":9091"          → Listen on all interfaces, port 9091
	//   - "127.0.0.1:9091" → Listen only on localhost
	//   - nil or ""        → No standalone server; metrics are only served
	//                        through the middleware's exposition route
	//
	// This setting can be configured via:
	//   - YAML configuration with the "address" key
	//   - Environment variable METRICS_ADDRESS
	Address *string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// Path is the path served by the standalone server. Default: "/metrics".
	Path string `yaml:"path" envconfig:"METRICS_PATH"`

	// ServiceName, when set, is attached as a constant "service" label to
	// every metric registered through this Registry.
	//
	// Example:
	//   ServiceName: "orders-api"
	//   → restify_status_codes{service="orders-api",status_code="200"} 1
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}

// Ptr returns a pointer to the given string value.
//
// Example:
//
//	cfg := metrics.Config{Address: metrics.Ptr(":9091")}
func Ptr(s string) *string {
	return &s
}
