package logger

// Log level constants accepted by Config.Level.
const (
	// Debug is the most verbose level. The HTTP metrics middleware emits its
	// per-request gating trace (route resolution, exclusion and admission
	// decisions, gating duration) only at this level.
	Debug = "debug"

	// Info reports configuration and lifecycle events.
	Info = "info"

	// Warning reports recoverable bookkeeping failures, such as a completion
	// listener that panicked while updating a metric.
	Warning = "warning"

	// Error reports failures that need operator attention.
	Error = "error"
)

// Config defines the configuration structure for the logger.
type Config struct {
	// Level determines the minimum log level that will be output.
	// Valid values are "debug", "info", "warning" and "error"; anything else
	// falls back to "info".
	//
	// This setting can be configured via:
	//   - YAML configuration with the "level" key
	//   - Environment variable LOGGER_LEVEL
	Level string `yaml:"level" envconfig:"LOGGER_LEVEL"`

	// EnableTracing adds "trace_id" and "span_id" fields to entries written
	// through the *WithContext methods when ctx carries a recording span.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "enable_tracing" key
	//   - Environment variable LOGGER_ENABLE_TRACING
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`

	// ServiceName populates the "service" field of every entry.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`

	// CallerSkip controls the number of stack frames to skip when reporting
	// the caller. If not set or set to 0, defaults to 1.
	CallerSkip int `yaml:"caller_skip" envconfig:"LOGGER_CALLER_SKIP"`
}
