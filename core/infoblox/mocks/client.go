package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/infoblox"
)

// Client is a mock implementation of infoblox.Client.
type Client struct {
	mock.Mock
}

func (m *Client) ListARecords(ctx context.Context, zone, view string) ([]infoblox.RecordObject, error) {
	args := m.Called(ctx, zone, view)
	if records, ok := args.Get(0).([]infoblox.RecordObject); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateARecord(ctx context.Context, req infoblox.CreateARecordRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *Client) LookupViewID(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}
