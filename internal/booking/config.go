package booking

// Config holds connection settings for the trekking platform API.
type Config struct {
	Endpoint   string
	TimeoutMs  int
	MaxRetries int
	UserAgent  string

	// RequestsPerSecond paces outgoing requests, retries included.
	// Zero disables pacing.
	RequestsPerSecond float64
}

// DefaultConfig returns a Config pointing at a local development backend.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://localhost:5000/api",
		TimeoutMs:  10000,
		MaxRetries: 1,
		UserAgent:  "trekplan",

		RequestsPerSecond: 4,
	}
}
