package hubspot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/domain/records"
	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/platform/httpclient"
	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/platform/logger"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "https://api.hubapi.com"
	DefaultTimeout = 15 * time.Second

	source = "HubSpot"
)

var (
	ErrNotConfigured = errors.New("hubspot client not configured")
)

// Config del cliente HubSpot (CRM v3 objects API).
type Config struct {
	BaseURL     string
	AccessToken string // private app token, va como Bearer
	ObjectType  string // p.ej. "2-56743582"
	Timeout     time.Duration
}

// Client implementa records.Repository contra el custom object configurado.
type Client struct {
	http       *httpclient.Client
	objectType string
	log        logger.Logger
}

var _ records.Repository = (*Client)(nil)

func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	token := strings.TrimSpace(cfg.AccessToken)
	objectType := strings.TrimSpace(cfg.ObjectType)
	if token == "" || objectType == "" {
		return nil, ErrNotConfigured
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc, err := httpclient.NewWithBaseURL(baseURL, timeout, map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("hubspot: %w", err)
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		http:       hc,
		objectType: objectType,
		log:        log.With(map[string]any{"component": "hubspot", "object_type": objectType}),
	}, nil
}

type searchRequest struct {
	FilterGroups []any    `json:"filterGroups"`
	Sorts        []string `json:"sorts"`
	Properties   []string `json:"properties"`
	Limit        int      `json:"limit"`
}

type searchResponse struct {
	Results []objectResult `json:"results"`
}

type objectResult struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
}

type createRequest struct {
	Properties createProperties `json:"properties"`
}

type createProperties struct {
	Name    string `json:"name"`
	Bio     string `json:"bio"`
	Species string `json:"species"`
}

// Search hace POST /crm/v3/objects/{type}/search. El orden viene del CRM y no se toca.
func (c *Client) Search(ctx context.Context, q records.SearchQuery) ([]records.Record, error) {
	body := searchRequest{
		FilterGroups: []any{},
		Sorts:        nonNil(q.Sorts),
		Properties:   nonNil(q.Properties),
		Limit:        q.Limit,
	}

	var out searchResponse
	if err := c.call(ctx, http.MethodPost, c.objectsPath()+"/search", body, &out); err != nil {
		return nil, err
	}

	items := make([]records.Record, 0, len(out.Results))
	for _, r := range out.Results {
		items = append(items, toRecord(r))
	}
	return items, nil
}

// Create hace POST /crm/v3/objects/{type} con name/bio/species.
func (c *Client) Create(ctx context.Context, p records.Properties) (records.Record, error) {
	body := createRequest{Properties: createProperties{
		Name:    p.Name,
		Bio:     p.Bio,
		Species: p.Species,
	}}

	var out objectResult
	if err := c.call(ctx, http.MethodPost, c.objectsPath(), body, &out); err != nil {
		return records.Record{}, err
	}

	rec := toRecord(out)
	if rec.Name == "" {
		rec.Name = p.Name
		rec.Bio = p.Bio
		rec.Species = p.Species
	}
	return rec, nil
}

func (c *Client) objectsPath() string {
	return "/crm/v3/objects/" + url.PathEscape(c.objectType)
}

func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	log := c.log.With(map[string]any{
		"call_id": uuid.NewString(),
		"method":  method,
		"path":    path,
	})

	start := time.Now()
	err := c.http.DoJSON(ctx, method, path, nil, in, out)
	elapsed := time.Since(start).Round(time.Millisecond).String()

	if err != nil {
		re := toRemoteError(err)
		log.Warn("hubspot call failed", map[string]any{
			"status":   re.StatusCode,
			"duration": elapsed,
			"err":      err,
		})
		return re
	}

	log.Debug("hubspot call ok", map[string]any{"duration": elapsed})
	return nil
}

func toRemoteError(err error) *records.RemoteError {
	re := &records.RemoteError{Source: source, Err: err}
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		re.StatusCode = he.StatusCode
		re.Body = he.Body
	}
	return re
}

func toRecord(r objectResult) records.Record {
	return records.Record{
		ID:         r.ID,
		CreateDate: prop(r.Properties, records.PropCreateDate),
		Name:       prop(r.Properties, records.PropName),
		Bio:        prop(r.Properties, records.PropBio),
		Species:    prop(r.Properties, records.PropSpecies),
	}
}

// prop devuelve "" si la propiedad falta o viene null.
func prop(props map[string]any, key string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
