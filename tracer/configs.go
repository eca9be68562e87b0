package tracer

// Config defines the configuration for the OpenTelemetry tracer.
type Config struct {
	// ServiceName identifies the service in exported spans.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv sets the "deployment.environment" and "environment" resource
	// attributes, e.g. "development", "staging", "production".
	AppEnv string `yaml:"app_env" envconfig:"TRACER_APP_ENV"`

	// EnableExport configures an OTLP HTTP exporter (endpoint taken from the
	// standard OTEL_EXPORTER_OTLP_* environment variables). When false, spans
	// are created for context propagation and log correlation only.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}
