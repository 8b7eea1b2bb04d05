// Package config provides the configuration keys and defaults of a pandemico instance
package config

import (
	"fmt"
	"github.com/alexandre-normand/pandemico/stats"
	"github.com/spf13/viper"
	"strings"
	"time"
)

const (
	TokenKey            = "token"            // Slack bot token, string value
	SigningSecretKey    = "signingSecret"    // Slack signing secret used to verify inbound requests, string value
	PortKey             = "port"             // Listening port of the http server, int value. Defaults to 8080
	DebugKey            = "debug"            // Debug mode, boolean value. Defaults to false
	TimeLocationKey     = "timeLocation"     // The time.Location used for timestamps and the health check schedule. Defaults to Local
	StatsURLTemplateKey = "statsURLTemplate" // Country statistics endpoint, with COUNTRY_CODE as the placeholder for the country code
	FlagURLTemplateKey  = "flagURLTemplate"  // Country flag image url, with COUNTRY_CODE as the placeholder for the country code
	StatsCacheSizeKey   = "statsCacheSize"   // The number of country snapshots to keep in cache, int value. 0 disables caching
	StatsCacheMaxAgeKey = "statsCacheMaxAge" // How long a cached snapshot is served before being fetched again, duration value
	HTTPTimeoutKey      = "httpTimeout"      // Timeout of requests to the statistics provider, duration value
	PushTimeoutKey      = "pushTimeout"      // Timeout of a single push of country data (fetch + post), duration value
	ClosedCountriesKey  = "closedCountries"  // Country codes closed on start, string slice value. Defaults to none

	healthCheckKey        = "healthCheck"
	HealthCheckEnabledKey = healthCheckKey + ".enabled" // Whether the team health check is scheduled, boolean value. Defaults to true
	HealthCheckWeekdayKey = healthCheckKey + ".weekday" // Day of the week of the team health check. Defaults to Monday
	HealthCheckAtTimeKey  = healthCheckKey + ".atTime"  // Time of the day of the team health check. Defaults to 09:00

	// Unit (weeks, days, hours, minutes or seconds) and interval of the team health check when its weekday is
	// set to an empty value. Defaults to every 1 week
	HealthCheckUnitKey     = healthCheckKey + ".unit"
	HealthCheckIntervalKey = healthCheckKey + ".interval"
)

const (
	defaultPort             = 8080
	defaultTimeLocation     = "Local"
	defaultFlagURLTemplate  = "https://www.countryflags.io/" + stats.CountryCodePlaceholder + "/flat/64.png"
	defaultStatsCacheSize   = 256
	defaultStatsCacheMaxAge = time.Duration(5) * time.Minute
	defaultHTTPTimeout      = time.Duration(10) * time.Second
	defaultPushTimeout      = time.Duration(30) * time.Second
	defaultHealthCheckDay   = "Monday"
	defaultHealthCheckTime  = "09:00"
	defaultHealthCheckUnit  = "weeks"
)

// envBindings maps configuration keys to the environment variables they can be set with
var envBindings = map[string]string{
	TokenKey:         "SLACK_TOKEN",
	SigningSecretKey: "SLACK_SIGNING_SECRET",
	PortKey:          "PORT",
	DebugKey:         "DEBUG",
}

// NewViperWithDefaults creates a new viper instance with defaults set on it
func NewViperWithDefaults() (v *viper.Viper) {
	v = viper.New()
	return LayerConfigWithDefaults(v)
}

// LayerConfigWithDefaults sets the default value of every key not already set on the given viper instance
func LayerConfigWithDefaults(v *viper.Viper) (lv *viper.Viper) {
	v.SetDefault(DebugKey, false)
	v.SetDefault(PortKey, defaultPort)
	v.SetDefault(TimeLocationKey, defaultTimeLocation)
	v.SetDefault(StatsURLTemplateKey, stats.DefaultURLTemplate)
	v.SetDefault(FlagURLTemplateKey, defaultFlagURLTemplate)
	v.SetDefault(StatsCacheSizeKey, defaultStatsCacheSize)
	v.SetDefault(StatsCacheMaxAgeKey, defaultStatsCacheMaxAge)
	v.SetDefault(HTTPTimeoutKey, defaultHTTPTimeout)
	v.SetDefault(PushTimeoutKey, defaultPushTimeout)
	v.SetDefault(HealthCheckEnabledKey, true)
	v.SetDefault(HealthCheckWeekdayKey, defaultHealthCheckDay)
	v.SetDefault(HealthCheckAtTimeKey, defaultHealthCheckTime)
	v.SetDefault(HealthCheckUnitKey, defaultHealthCheckUnit)
	v.SetDefault(HealthCheckIntervalKey, 1)

	return v
}

// BindEnv binds the secrets, port and debug keys to their environment variables (SLACK_TOKEN, SLACK_SIGNING_SECRET,
// PORT and DEBUG)
func BindEnv(v *viper.Viper) (err error) {
	for key, env := range envBindings {
		if err = v.BindEnv(key, env); err != nil {
			return err
		}
	}

	return nil
}

// Validate returns an error if a required key is missing
func Validate(v *viper.Viper) (err error) {
	missing := make([]string, 0)
	for _, key := range []string{TokenKey, SigningSecretKey} {
		if v.GetString(key) == "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", key, envBindings[key]))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("Missing required configuration: [%s]", strings.Join(missing, ", "))
	}

	return nil
}

// GetTimeLocation returns the time.Location set by TimeLocationKey or an error if the value is invalid
func GetTimeLocation(v *viper.Viper) (timeLoc *time.Location, err error) {
	timeLocationName := v.GetString(TimeLocationKey)
	timeLoc, err = time.LoadLocation(timeLocationName)
	if err != nil {
		return nil, fmt.Errorf("Unable to load time location with name [%s]: %v", timeLocationName, err)
	}

	return timeLoc, nil
}
