package infoblox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{APIURL: server.URL, APIToken: "test-token"}, zap.NewNop())
}

// TestListARecords verifies the request shape and the client-side view
// filtering the API forces on us.
func TestListARecords(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/ddi/v1/dns/record", r.URL.Path)
		assert.Equal(t, "Token test-token", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, `type=="A" and absolute_zone_name=="example.com."`, q.Get("_filter"))
		assert.Equal(t, recordFields, q.Get("_fields"))
		assert.Equal(t, "1000", q.Get("_limit"))

		_ = json.NewEncoder(w).Encode(recordListResponse{Results: []RecordObject{
			{ID: "rec-1", NameInZone: "host1", ViewName: "AZURE-3", RData: RData{Address: "10.0.0.5"}},
			{ID: "rec-2", NameInZone: "host1", ViewName: "AZURE-9", RData: RData{Address: "10.0.0.5"}},
			{ID: "rec-3", NameInZone: "host2", ViewName: "AZURE-3", RData: RData{Address: "10.0.0.6"}},
		}})
	})

	records, err := c.ListARecords(context.Background(), "example.com.", "AZURE-3")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rec-1", records[0].ID)
	assert.Equal(t, "rec-3", records[1].ID)
}

// TestListARecords_TransportFailure turns a non-2xx response into an error
// carrying the body detail.
func TestListARecords_TransportFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	})

	_, err := c.ListARecords(context.Background(), "example.com.", "AZURE-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "invalid token")
}

func TestLookupViewID(t *testing.T) {
	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/ddi/v1/dns/view", r.URL.Path)
		assert.Equal(t, `name=="AZURE-3"`, r.URL.Query().Get("_filter"))
		_ = json.NewEncoder(w).Encode(viewListResponse{Results: []ViewObject{
			{ID: "dns/view/abc123", Name: "AZURE-3"},
		}})
	})

	id, err := c.LookupViewID(context.Background(), "AZURE-3")
	require.NoError(t, err)
	assert.Equal(t, "dns/view/abc123", id)

	// Second lookup is served from the cache.
	id, err = c.LookupViewID(context.Background(), "AZURE-3")
	require.NoError(t, err)
	assert.Equal(t, "dns/view/abc123", id)
	assert.Equal(t, 1, calls)
}

func TestLookupViewID_NotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(viewListResponse{})
	})

	_, err := c.LookupViewID(context.Background(), "MISSING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `view "MISSING" not found`)
}

// TestCreateARecord verifies the POST body including the resolved view ID.
func TestCreateARecord(t *testing.T) {
	var created createRecordBody
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/ddi/v1/dns/view":
			_ = json.NewEncoder(w).Encode(viewListResponse{Results: []ViewObject{
				{ID: "dns/view/xyz789", Name: "AZURE-9"},
			}})
		case "/api/ddi/v1/dns/record":
			require.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusCreated)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	err := c.CreateARecord(context.Background(), CreateARecordRequest{
		View:         "AZURE-9",
		AbsoluteName: "host1.example.com.",
		Address:      "10.0.0.5",
		Comment:      "Synced from AZURE-3 on 2026-08-29 10:15:00 UTC, created: 2026-08-01T09:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "A", created.Type)
	assert.Equal(t, "10.0.0.5", created.RData.Address)
	assert.Equal(t, "host1.example.com.", created.AbsoluteNameSpec)
	assert.Equal(t, "dns/view/xyz789", created.View)
	assert.Contains(t, created.Comment, "Synced from AZURE-3")
}

// TestCreateARecord_ViewLookupFailure: a record cannot be created without a
// resolvable view.
func TestCreateARecord_ViewLookupFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(viewListResponse{})
	})

	err := c.CreateARecord(context.Background(), CreateARecordRequest{View: "GONE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving view")
}
