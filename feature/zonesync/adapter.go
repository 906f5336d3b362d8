package zonesync

import (
	"context"
	"strings"

	"github.com/miekg/dns"

	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/infoblox"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/reconcile"
)

// adapter bridges the Infoblox client to the engine's Loader and Writer
// interfaces.
type adapter struct {
	client infoblox.Client
}

func (a *adapter) ListARecords(ctx context.Context, zone, view string) ([]reconcile.Record, error) {
	objects, err := a.client.ListARecords(ctx, zone, view)
	if err != nil {
		return nil, err
	}
	records := make([]reconcile.Record, 0, len(objects))
	for _, obj := range objects {
		records = append(records, reconcile.Record{
			ID:        obj.ID,
			Hostname:  absoluteName(obj, zone),
			Address:   obj.RData.Address,
			View:      obj.ViewName,
			Comment:   obj.Comment,
			CreatedAt: obj.CreatedAt,
		})
	}
	return records, nil
}

func (a *adapter) CreateARecord(ctx context.Context, _ string, c reconcile.Creation) error {
	return a.client.CreateARecord(ctx, infoblox.CreateARecordRequest{
		View:         c.TargetView,
		AbsoluteName: c.Hostname,
		Address:      c.Address,
		Comment:      c.Comment,
	})
}

// absoluteName builds the fully qualified record name. An empty name_in_zone
// means the record sits at the zone apex.
func absoluteName(obj infoblox.RecordObject, zone string) string {
	zoneName := obj.AbsoluteZoneName
	if zoneName == "" {
		zoneName = zone
	}
	if obj.NameInZone == "" {
		return dns.Fqdn(zoneName)
	}
	return dns.Fqdn(strings.TrimSuffix(obj.NameInZone, ".") + "." + zoneName)
}
