package infoblox

// Config holds configuration for the Universal DDI API client.
type Config struct {
	// APIURL is the API endpoint, e.g. https://csp.infoblox.com.
	APIURL string `mapstructure:"api_url" default:"https://csp.infoblox.com"`
	// APIToken is an API token with DNS management permissions.
	APIToken string `mapstructure:"api_token" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PageLimit caps the number of records returned by a single list call.
	PageLimit int `mapstructure:"page_limit" default:"1000"`
}
