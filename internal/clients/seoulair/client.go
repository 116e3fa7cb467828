// Package seoulair reads per-district air quality from the Seoul open data API.
package seoulair

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/terraincognita07/shim/internal/services"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "http://openapi.seoul.go.kr:8088"
	serviceName    = "ListAirQualityByDistrictService"
	districtCount  = 25
	snapshotKey    = "districts"
)

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	// CacheTTL keeps the district table for this long. Zero disables caching.
	CacheTTL time.Duration
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *expirable.LRU[string, string]
}

func New(apiKey string, options Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(options.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	client := &Client{apiKey: apiKey, baseURL: baseURL, httpClient: httpClient}
	if options.CacheTTL > 0 {
		client.cache = expirable.NewLRU[string, string](1, nil, options.CacheTTL)
	}
	return client
}

// AirQuality returns the latest reading for district. A district missing from the
// table yields the 30/15/50 "unavailable" triple; transport and decode failures are errors.
func (client *Client) AirQuality(ctx context.Context, district string) (services.AirQualityReading, error) {
	body, err := client.districtTable(ctx)
	if err != nil {
		return services.AirQualityReading{}, err
	}

	target := strings.TrimSpace(district)
	var (
		reading services.AirQualityReading
		found   bool
	)
	gjson.Get(body, serviceName+".row").ForEach(func(_, row gjson.Result) bool {
		name := row.Get("MSRSTENAME").String()
		if name == "" {
			name = row.Get("MSRSTN_NM").String()
		}
		if strings.TrimSpace(name) != target {
			return true
		}
		reading = services.AirQualityReading{
			PM10: nonNegativeInt(row.Get("PM10")),
			PM25: nonNegativeInt(row.Get("PM25")),
			AQI:  nonNegativeInt(row.Get("CAI")),
		}
		found = true
		return false
	})

	if !found {
		return unavailableReading(), nil
	}
	return reading, nil
}

func (client *Client) districtTable(ctx context.Context) (string, error) {
	if client.cache != nil {
		if body, ok := client.cache.Get(snapshotKey); ok {
			return body, nil
		}
	}

	endpoint := fmt.Sprintf("%s/%s/json/%s/1/%d", client.baseURL, url.PathEscape(client.apiKey), serviceName, districtCount)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build air quality request: %w", err)
	}
	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("call air quality api: %w", stripRequestURL(err))
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("air quality api status %d", response.StatusCode)
	}
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("read air quality response: %w", err)
	}
	body := string(raw)
	if !gjson.Valid(body) || !gjson.Get(body, serviceName).Exists() {
		return "", fmt.Errorf("unexpected air quality response: %.200s", body)
	}

	if client.cache != nil {
		client.cache.Add(snapshotKey, body)
	}
	return body, nil
}

func nonNegativeInt(value gjson.Result) *int {
	if !value.Exists() || strings.TrimSpace(value.String()) == "" {
		return nil
	}
	parsed := int(value.Int())
	if parsed < 0 {
		return nil
	}
	return &parsed
}

func unavailableReading() services.AirQualityReading {
	pm10, pm25, aqi := services.DefaultPM10, services.DefaultPM25, services.DefaultAQI
	return services.AirQualityReading{PM10: &pm10, PM25: &pm25, AQI: &aqi}
}

// stripRequestURL drops the request URL from transport errors because its path carries the API key.
func stripRequestURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
