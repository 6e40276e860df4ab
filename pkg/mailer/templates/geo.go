package templates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Geo save lookup result
type Geo struct {
	City     string
	Region   string // state/province
	Country  string
	Timezone string
}

type GeoResolver interface {
	Lookup(ctx context.Context, ip string) (Geo, error)
}

func FormatGeo(g Geo) string {
	var parts []string
	if s := strings.TrimSpace(g.City); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(g.Region); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(g.Country); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

const ipAPIBaseURL = "http://ip-api.com"

// IPAPIResolver implements GeoResolver using ip-api.com
type IPAPIResolver struct {
	client *resty.Client
}

// NewIPAPIResolver builds a resolver against baseURL; empty means ip-api.com.
func NewIPAPIResolver(baseURL string) *IPAPIResolver {
	if baseURL == "" {
		baseURL = ipAPIBaseURL
	}
	return &IPAPIResolver{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(2 * time.Second),
	}
}

func (r *IPAPIResolver) Lookup(ctx context.Context, ip string) (Geo, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return Geo{}, fmt.Errorf("empty ip")
	}

	var body struct {
		Status     string `json:"status"`
		Message    string `json:"message"`
		Country    string `json:"country"`
		RegionName string `json:"regionName"`
		City       string `json:"city"`
		Timezone   string `json:"timezone"`
	}
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("ip", ip).
		SetQueryParam("fields", "status,message,country,regionName,city,timezone").
		SetResult(&body).
		ForceContentType("application/json").
		Get("/json/{ip}")
	if err != nil {
		return Geo{}, err
	}
	if resp.IsError() {
		return Geo{}, fmt.Errorf("geo lookup: http %d", resp.StatusCode())
	}
	if strings.ToLower(body.Status) != "success" {
		return Geo{}, fmt.Errorf("geo lookup failed: %s", body.Message)
	}
	return Geo{City: body.City, Region: body.RegionName, Country: body.Country, Timezone: body.Timezone}, nil
}
