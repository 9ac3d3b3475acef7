package constants

import "time"

// APIFlavor selects which backend dialect the resource client speaks.
type APIFlavor string

const (
	AppName            = "habitdash"
	Version            = "v0.2.0"
	DefaultKeyringUser = "session"
	DefaultConfigDir   = "~/.config/habitdash"
	DefaultCachePath   = "~/.config/habitdash/cache.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is used for month flags and cache keys (YYYY-MM)
	MonthFormat = "2006-01"

	// API flavors. The detailed flavor speaks the entries/status API, the
	// simple flavor speaks the completions boolean API.
	FlavorDetailed APIFlavor = "detailed"
	FlavorSimple   APIFlavor = "simple"

	// Default backend base URLs per flavor.
	DefaultBaseURLDetailed = "http://localhost:8080/api"
	DefaultBaseURLSimple   = "http://localhost:9090/api"

	// DefaultRequestTimeout bounds a single backend round trip. The client
	// never retries, so this is the total budget per call.
	DefaultRequestTimeout = 10 * time.Second

	// RefreshWorkers caps the concurrent per-habit streak/entry fetches
	// issued by a dashboard refresh.
	RefreshWorkers = 4

	// Environment variable names.
	EnvBaseURL = "HABITDASH_API_BASE_URL"
	EnvFlavor  = "HABITDASH_API_FLAVOR"
	EnvUserID  = "HABITDASH_USER_ID"
	EnvTimeout = "HABITDASH_TIMEOUT"
	EnvDebug   = "HABITDASH_DEBUG"
)
