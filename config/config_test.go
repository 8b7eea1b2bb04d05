package config_test

import (
	"github.com/alexandre-normand/pandemico/config"
	"github.com/alexandre-normand/pandemico/stats"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestNewWithDefault(t *testing.T) {
	v := config.NewViperWithDefaults()

	assert.Equal(t, false, v.GetBool(config.DebugKey), "%s should be %t", config.DebugKey, false)
	assert.Equal(t, 8080, v.GetInt(config.PortKey), "%s should be %d", config.PortKey, 8080)
	assert.Equal(t, "Local", v.GetString(config.TimeLocationKey), "%s should be %s", config.TimeLocationKey, "Local")
	assert.Equal(t, stats.DefaultURLTemplate, v.GetString(config.StatsURLTemplateKey))
	assert.Equal(t, "https://www.countryflags.io/COUNTRY_CODE/flat/64.png", v.GetString(config.FlagURLTemplateKey))
	assert.Equal(t, 256, v.GetInt(config.StatsCacheSizeKey), "%s should be %d", config.StatsCacheSizeKey, 256)
	assert.Equal(t, time.Duration(5)*time.Minute, v.GetDuration(config.StatsCacheMaxAgeKey))
	assert.Equal(t, time.Duration(10)*time.Second, v.GetDuration(config.HTTPTimeoutKey))
	assert.Equal(t, time.Duration(30)*time.Second, v.GetDuration(config.PushTimeoutKey))
	assert.Equal(t, true, v.GetBool(config.HealthCheckEnabledKey))
	assert.Equal(t, "Monday", v.GetString(config.HealthCheckWeekdayKey))
	assert.Equal(t, "09:00", v.GetString(config.HealthCheckAtTimeKey))
	assert.Equal(t, "weeks", v.GetString(config.HealthCheckUnitKey))
	assert.Equal(t, uint64(1), v.GetUint64(config.HealthCheckIntervalKey))
	assert.Equal(t, "", v.GetString(config.TokenKey))
}

func TestLayeredConfigWithDefaultsAndOverrides(t *testing.T) {
	v := viper.New()
	v.Set(config.PortKey, 3000)
	v.Set(config.HealthCheckAtTimeKey, "10:30")

	v = config.LayerConfigWithDefaults(v)

	assert.Equal(t, 3000, v.GetInt(config.PortKey))
	assert.Equal(t, "10:30", v.GetString(config.HealthCheckAtTimeKey))
	assert.Equal(t, "Monday", v.GetString(config.HealthCheckWeekdayKey))
	assert.Equal(t, 256, v.GetInt(config.StatsCacheSizeKey))
}

func TestBindEnv(t *testing.T) {
	t.Setenv("SLACK_TOKEN", "xoxb-123")
	t.Setenv("SLACK_SIGNING_SECRET", "s3cr3t")
	t.Setenv("PORT", "9090")
	t.Setenv("DEBUG", "true")

	v := config.NewViperWithDefaults()
	err := config.BindEnv(v)

	assert.Nil(t, err)
	assert.Equal(t, "xoxb-123", v.GetString(config.TokenKey))
	assert.Equal(t, "s3cr3t", v.GetString(config.SigningSecretKey))
	assert.Equal(t, 9090, v.GetInt(config.PortKey))
	assert.Equal(t, true, v.GetBool(config.DebugKey))
}

func TestValidate(t *testing.T) {
	v := config.NewViperWithDefaults()
	v.Set(config.TokenKey, "xoxb-123")
	v.Set(config.SigningSecretKey, "s3cr3t")

	assert.Nil(t, config.Validate(v))
}

func TestValidateWithMissingSecrets(t *testing.T) {
	v := config.NewViperWithDefaults()

	err := config.Validate(v)

	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "token (SLACK_TOKEN)")
		assert.Contains(t, err.Error(), "signingSecret (SLACK_SIGNING_SECRET)")
	}
}

func TestGetTimeLocationWithDefault(t *testing.T) {
	v := viper.New()
	v.Set(config.TimeLocationKey, "Local")

	timeLoc, err := config.GetTimeLocation(v)

	assert.Nil(t, err)
	if assert.NotNil(t, timeLoc) {
		assert.Conditionf(t, func() bool { return timeLoc.String() == "Local" || timeLoc.String() == "UTC" }, "timeLoc should be either Local or UTC but was %s", timeLoc.String())
	}
}

func TestGetTimeLocationWithTimezoneId(t *testing.T) {
	v := viper.New()
	v.Set(config.TimeLocationKey, "America/Los_Angeles")

	timeLoc, err := config.GetTimeLocation(v)

	assert.Nil(t, err)
	if assert.NotNil(t, timeLoc) {
		assert.Equal(t, "America/Los_Angeles", timeLoc.String())
	}
}

func TestGetTimeLocationWithInvalidValue(t *testing.T) {
	v := viper.New()
	v.Set(config.TimeLocationKey, "invalid")

	_, err := config.GetTimeLocation(v)

	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "invalid")
	}
}
