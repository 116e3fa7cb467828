// Package kma reads ultra short-term observations from the Korea Meteorological
// Administration village forecast service.
package kma

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/shim/internal/services"
	"github.com/tidwall/gjson"
)

const DefaultEndpoint = "https://apis.data.go.kr/1360000/VilageFcstInfoService_2.0/getUltraSrtNcst"

const (
	categoryTemperature   = "T1H"
	categorySky           = "SKY"
	categoryPrecipitation = "PTY"

	defaultSkyCode = 1
)

var (
	ErrUpstreamResult = errors.New("kma result not ok")
	ErrNoObservations = errors.New("kma returned no observations")
)

type Options struct {
	Endpoint   string
	HTTPClient *http.Client
	Location   *time.Location
}

type Client struct {
	serviceKey string
	endpoint   string
	httpClient *http.Client
	location   *time.Location
	now        func() time.Time
}

func New(serviceKey string, options Options) *Client {
	endpoint := strings.TrimSpace(options.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	location := options.Location
	if location == nil {
		location = time.UTC
	}
	return &Client{
		serviceKey: serviceKey,
		endpoint:   endpoint,
		httpClient: httpClient,
		location:   location,
		now:        time.Now,
	}
}

// BaseDateTime returns the observation slot to ask for: the previous full hour,
// since the current hour is usually not published yet.
func BaseDateTime(now time.Time, location *time.Location) (string, string) {
	slot := now.In(location).Add(-time.Hour)
	return slot.Format("20060102"), slot.Format("15") + "00"
}

func (client *Client) Conditions(ctx context.Context, x int, y int) (services.WeatherReading, error) {
	baseDate, baseTime := BaseDateTime(client.now(), client.location)

	query := url.Values{}
	query.Set("serviceKey", client.serviceKey)
	query.Set("numOfRows", "1000")
	query.Set("pageNo", "1")
	query.Set("dataType", "JSON")
	query.Set("base_date", baseDate)
	query.Set("base_time", baseTime)
	query.Set("nx", strconv.Itoa(x))
	query.Set("ny", strconv.Itoa(y))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return services.WeatherReading{}, fmt.Errorf("build kma request: %w", err)
	}
	response, err := client.httpClient.Do(request)
	if err != nil {
		return services.WeatherReading{}, fmt.Errorf("call kma api: %w", stripRequestURL(err))
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return services.WeatherReading{}, fmt.Errorf("kma api status %d", response.StatusCode)
	}
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return services.WeatherReading{}, fmt.Errorf("read kma response: %w", err)
	}
	return parseObservations(string(raw))
}

func parseObservations(body string) (services.WeatherReading, error) {
	if !gjson.Valid(body) {
		return services.WeatherReading{}, fmt.Errorf("unexpected kma response: %.200s", body)
	}

	resultCode := gjson.Get(body, "response.header.resultCode").String()
	if resultCode != "00" {
		message := gjson.Get(body, "response.header.resultMsg").String()
		return services.WeatherReading{}, fmt.Errorf("%w: %s %s", ErrUpstreamResult, resultCode, message)
	}
	if gjson.Get(body, "response.body.totalCount").Int() == 0 {
		return services.WeatherReading{}, ErrNoObservations
	}

	items := gjson.Get(body, "response.body.items.item")
	if items.IsObject() {
		items = gjson.Parse("[" + items.Raw + "]")
	}

	reading := services.WeatherReading{SkyCode: defaultSkyCode}
	items.ForEach(func(_, item gjson.Result) bool {
		value := item.Get("obsrValue")
		switch item.Get("category").String() {
		case categoryTemperature:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(value.String()), 64); err == nil {
				reading.Temperature = &parsed
			}
		case categorySky:
			reading.SkyCode = int(value.Int())
		case categoryPrecipitation:
			reading.PrecipitationType = int(value.Int())
		}
		return true
	})

	if reading.Temperature == nil {
		return services.WeatherReading{}, fmt.Errorf("%w: missing %s", ErrNoObservations, categoryTemperature)
	}
	return reading, nil
}

// stripRequestURL drops the request URL from transport errors because the query carries the service key.
func stripRequestURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
