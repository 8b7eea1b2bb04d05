package stats

import (
	"context"
	"encoding/json"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// CountryCodePlaceholder is the placeholder substituted with the country code in URL templates
	CountryCodePlaceholder = "COUNTRY_CODE"

	// DefaultURLTemplate is the default template of the country statistics endpoint
	DefaultURLTemplate = "http://corona-api.com/countries/" + CountryCodePlaceholder

	// maxErrorBodySize limits how much of a failed response body ends up in errors
	maxErrorBodySize = 512
)

// countryResponse maps the JSON body of the country statistics endpoint. Numbers are kept
// as interface{} since the provider sometimes sends them as null or as floats
type countryResponse struct {
	Data struct {
		Name       string      `json:"name"`
		Code       string      `json:"code"`
		Population interface{} `json:"population"`
		UpdatedAt  string      `json:"updated_at"`
		Today      struct {
			Deaths    interface{} `json:"deaths"`
			Confirmed interface{} `json:"confirmed"`
		} `json:"today"`
		LatestData struct {
			Deaths    interface{} `json:"deaths"`
			Confirmed interface{} `json:"confirmed"`
			Recovered interface{} `json:"recovered"`
		} `json:"latest_data"`
	} `json:"data"`
}

// Client fetches country statistics with one HTTP GET per call
type Client struct {
	urlTemplate string
	httpClient  *http.Client
}

// NewClient returns a new Client for the given URL template (see CountryCodePlaceholder). If httpClient is
// nil, http.DefaultClient is used
func NewClient(urlTemplate string, httpClient *http.Client) (c *Client) {
	c = new(Client)
	c.urlTemplate = urlTemplate
	c.httpClient = httpClient

	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}

	return c
}

// URL returns the statistics URL for a country
func (c *Client) URL(countryCode string) string {
	return URLFor(c.urlTemplate, countryCode)
}

// URLFor returns the template with the placeholder replaced by the (escaped) country code
func URLFor(template string, countryCode string) string {
	return strings.Replace(template, CountryCodePlaceholder, url.PathEscape(countryCode), -1)
}

// Fetch gets the statistics of a country. Any transport error, non-200 response or undecodable body
// is returned as an error. There is no retry
func (c *Client) Fetch(ctx context.Context, countryCode string) (snapshot *Snapshot, err error) {
	u := c.URL(countryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request for [%s]", u)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get [%s]", u)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, errors.Errorf("GET [%s]: want 200, got %d: %s", u, resp.StatusCode, b)
	}

	var cr countryResponse
	if err = json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, errors.Wrapf(err, "failed to decode response from [%s]", u)
	}

	return cr.toSnapshot(countryCode), nil
}

// toSnapshot converts the decoded response to a Snapshot
func (cr countryResponse) toSnapshot(countryCode string) (snapshot *Snapshot) {
	snapshot = new(Snapshot)
	snapshot.Code = countryCode
	snapshot.Name = cr.Data.Name
	if snapshot.Name == "" {
		snapshot.Name = countryCode
	}

	snapshot.Population = cast.ToInt64(cr.Data.Population)
	snapshot.Today = Counts{
		Confirmed: cast.ToInt64(cr.Data.Today.Confirmed),
		Deaths:    cast.ToInt64(cr.Data.Today.Deaths),
	}
	snapshot.Total = Counts{
		Confirmed: cast.ToInt64(cr.Data.LatestData.Confirmed),
		Deaths:    cast.ToInt64(cr.Data.LatestData.Deaths),
		Recovered: cast.ToInt64(cr.Data.LatestData.Recovered),
	}

	if updatedAt, err := time.Parse(time.RFC3339, cr.Data.UpdatedAt); err == nil {
		snapshot.UpdatedAt = updatedAt
	}

	return snapshot
}
