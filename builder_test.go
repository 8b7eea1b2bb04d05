package pandemico_test

import (
	"github.com/alexandre-normand/pandemico"
	"github.com/alexandre-normand/pandemico/config"
	"github.com/alexandre-normand/pandemico/test/capture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"testing"
)

func TestNewBotWithDefaults(t *testing.T) {
	p, err := pandemico.NewBot("pandemico", config.NewViperWithDefaults()).
		Build()

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.NotNil(t, p.Registry())
	assert.NotNil(t, p.Handler())
}

func TestNewBotWithInvalidTimeLocation(t *testing.T) {
	v := config.NewViperWithDefaults()
	v.Set(config.TimeLocationKey, "Mars/Olympus_Mons")

	p, err := pandemico.NewBot("pandemico", v).
		WithClosedCountries("US").
		Build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to load time location with name [Mars/Olympus_Mons]")
	assert.Nil(t, p)
}

func TestNewBotWithInvalidCacheSize(t *testing.T) {
	v := config.NewViperWithDefaults()
	v.Set(config.StatsCacheSizeKey, -1)

	p, err := pandemico.NewBot("pandemico", v).
		Build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid stats cache size [-1]")
	assert.Nil(t, p)
}

func TestNewBotWithClosedCountries(t *testing.T) {
	p, err := pandemico.NewBot("pandemico", config.NewViperWithDefaults(), pandemico.OptionChatDriver(capture.NewChatDriver()), pandemico.OptionLog(pandemico.NewSLogger(ioutil.Discard, false))).
		WithClosedCountries("US", " fr ", "").
		Build()

	require.NoError(t, err)
	assert.True(t, p.Registry().IsClosed("US"))
	assert.True(t, p.Registry().IsClosed("FR"))
	assert.False(t, p.Registry().IsClosed(""))
	assert.False(t, p.Registry().IsClosed("CA"))
}
