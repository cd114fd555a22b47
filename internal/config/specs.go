package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// Statically configured consumer key -> secret pairs. These always win
	// over registry-derived credentials for the same key.
	OAuthCredentials map[string]string `envconfig:"lti_oauth_credentials"`

	// Fallback cohort synthesized when the registry has no default row.
	StaticCohortTitle    string `envconfig:"lti_cohort_title"`
	StaticCohortLoginURL string `envconfig:"lti_cohort_login_url"`
	StaticCohortEnrolURL string `envconfig:"lti_cohort_enrol_url"`
	StaticPersistParams  string `envconfig:"lti_persist_params"`

	// Prefix for usernames synthesized when a launch carries no person id.
	UnknownUserPrefix string `envconfig:"lti_unknown_user_prefix" default:"cuid:"`

	// Group granted to users whose launch roles include Instructor.
	StaffGroup string `envconfig:"lti_staff_group"`

	// Freshness window for oauth_timestamp. By default stale launches are
	// logged but accepted; set reject to turn the window into a hard check.
	TimestampMaxAge        time.Duration `envconfig:"lti_timestamp_max_age" default:"1h"`
	RejectStaleTimestamps  bool          `envconfig:"lti_reject_stale_timestamps" default:"false"`
	CredentialCacheMaxAge  time.Duration `envconfig:"lti_credential_cache_max_age" default:"0"`
	StateCookieKey         string        `envconfig:"lti_state_cookie_key" required:"true"`
	ScriptPrefix           string        `envconfig:"script_prefix" default:"/"`
	DefaultRedirectTarget  string        `envconfig:"lti_default_redirect" default:"/"`
	SecureCookies          bool          `envconfig:"secure_cookies" default:"true"`
	StateCookieMaxLifetime time.Duration `envconfig:"lti_state_cookie_lifetime" default:"1h"`

	// Admin API authentication.
	AdminIssuer          string   `envconfig:"admin_jwt_issuer"`
	AdminJWKSURL         string   `envconfig:"admin_jwks_url"`
	AdminAllowedSubjects []string `envconfig:"admin_allowed_subjects"`
	AdminRequiredScope   string   `envconfig:"admin_required_scope" default:"lti:admin"`
}
