package zonesync

import "fmt"

// Config holds the zone and view pair being synchronized. The mapstructure
// keys are chosen so the environment variables of existing deployments keep
// working: DNS_ZONE_NAME, DNS_VIEW_SOURCE, DNS_VIEW_TARGET.
type Config struct {
	// ZoneName is the absolute zone to reconcile.
	ZoneName string `mapstructure:"zone_name" default:"privatelink.blob.core.windows.net."`
	// ViewSource is the first view of the pair.
	ViewSource string `mapstructure:"view_source" default:""`
	// ViewTarget is the second view of the pair.
	ViewTarget string `mapstructure:"view_target" default:""`
}

// Validate reports the first missing or inconsistent setting.
func (c Config) Validate() error {
	if c.ZoneName == "" {
		return fmt.Errorf("zonesync: DNS_ZONE_NAME must be set")
	}
	if c.ViewSource == "" {
		return fmt.Errorf("zonesync: DNS_VIEW_SOURCE must be set")
	}
	if c.ViewTarget == "" {
		return fmt.Errorf("zonesync: DNS_VIEW_TARGET must be set")
	}
	if c.ViewSource == c.ViewTarget {
		return fmt.Errorf("zonesync: source and target view must differ, both are %q", c.ViewSource)
	}
	return nil
}
