// Package config loads the application configuration from environment
// variables, optionally overlaid by a .env file for local development.
//
// Defaults are declared as struct tags on the partial config types and bound
// into Viper by reflection, so every key is known to AutomaticEnv before
// unmarshalling. The flat environment names match the original deployment:
// INFOBLOX_API_URL, INFOBLOX_API_TOKEN, DNS_ZONE_NAME, DNS_VIEW_SOURCE,
// DNS_VIEW_TARGET.
package config
