package infoblox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	recordEndpoint = "api/ddi/v1/dns/record"
	viewEndpoint   = "api/ddi/v1/dns/view"

	// recordFields keeps list responses down to what the sync consumes.
	recordFields = "id,name_in_zone,absolute_zone_name,rdata,comment,type,view,view_name,created_at,updated_at"
)

// Client is the narrow API surface the rest of the program consumes.
type Client interface {
	// ListARecords fetches all A records of a zone as seen from one view.
	ListARecords(ctx context.Context, zone, view string) ([]RecordObject, error)
	// CreateARecord creates a single A record.
	CreateARecord(ctx context.Context, req CreateARecordRequest) error
	// LookupViewID resolves a view name to its object ID.
	LookupViewID(ctx context.Context, name string) (string, error)
}

type client struct {
	baseURL string
	token   string
	limit   int
	http    *http.Client
	log     *zap.Logger

	mu      sync.Mutex
	viewIDs map[string]string
}

// NewClient creates an HTTP-backed API client. The transport carries explicit
// connection and response-header timeouts so a stuck platform call cannot
// hang a run indefinitely.
func NewClient(cfg Config, log *zap.Logger) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	limit := cfg.PageLimit
	if limit <= 0 {
		limit = 1000
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &client{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		token:   cfg.APIToken,
		limit:   limit,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
		log:     log,
		viewIDs: make(map[string]string),
	}
}

// doRequest builds and executes one API call, decoding the JSON response into
// out when it is non-nil.
func (c *client) doRequest(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("infoblox: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("infoblox: build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("infoblox: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("infoblox: %s %s returned status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("infoblox: decode %s response: %w", path, err)
		}
	}
	return nil
}

func (c *client) ListARecords(ctx context.Context, zone, view string) ([]RecordObject, error) {
	query := url.Values{}
	query.Set("_filter", fmt.Sprintf("type==%q and absolute_zone_name==%q", "A", zone))
	query.Set("_fields", recordFields)
	query.Set("_limit", strconv.Itoa(c.limit))

	var resp recordListResponse
	if err := c.doRequest(ctx, http.MethodGet, recordEndpoint, query, nil, &resp); err != nil {
		return nil, err
	}

	// The API cannot filter records by view, so filter client-side.
	records := make([]RecordObject, 0, len(resp.Results))
	for _, rec := range resp.Results {
		if rec.ViewName == view {
			records = append(records, rec)
		}
	}
	c.log.Debug("fetched zone records",
		zap.String("zone", zone),
		zap.String("view", view),
		zap.Int("total_in_zone", len(resp.Results)),
		zap.Int("in_view", len(records)))
	return records, nil
}

func (c *client) LookupViewID(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	id, ok := c.viewIDs[name]
	c.mu.Unlock()
	if ok {
		return id, nil
	}

	query := url.Values{}
	query.Set("_filter", fmt.Sprintf("name==%q", name))
	query.Set("_fields", "id,name")
	query.Set("_limit", "10")

	var resp viewListResponse
	if err := c.doRequest(ctx, http.MethodGet, viewEndpoint, query, nil, &resp); err != nil {
		return "", err
	}
	if len(resp.Results) == 0 {
		return "", fmt.Errorf("infoblox: view %q not found", name)
	}

	id = resp.Results[0].ID
	c.mu.Lock()
	c.viewIDs[name] = id
	c.mu.Unlock()
	return id, nil
}

func (c *client) CreateARecord(ctx context.Context, req CreateARecordRequest) error {
	viewID, err := c.LookupViewID(ctx, req.View)
	if err != nil {
		return fmt.Errorf("infoblox: resolving view for record creation: %w", err)
	}

	body := createRecordBody{
		Type:             "A",
		RData:            RData{Address: req.Address},
		Comment:          req.Comment,
		AbsoluteNameSpec: req.AbsoluteName,
		View:             viewID,
	}
	if err := c.doRequest(ctx, http.MethodPost, recordEndpoint, nil, body, nil); err != nil {
		return err
	}
	c.log.Debug("created A record",
		zap.String("name", req.AbsoluteName),
		zap.String("address", req.Address),
		zap.String("view", req.View))
	return nil
}
