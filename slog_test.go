package pandemico_test

import (
	"github.com/alexandre-normand/pandemico"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestLogWhenDebugEnabled(t *testing.T) {
	var b strings.Builder
	l := pandemico.NewSLogger(&b, true)

	l.Debugf("Writing a log statement for my little %s", "red bird")

	assert.Contains(t, b.String(), "Writing a log statement for my little red bird")
	assert.Contains(t, b.String(), "level=debug")
}

func TestLogWhenDebugDisabled(t *testing.T) {
	var b strings.Builder
	l := pandemico.NewSLogger(&b, false)

	l.Debugf("Writing a log statement for my little %s", "red bird")

	// Nothing should have been logged
	assert.Equal(t, "", b.String())
}

func TestPrintfAlwaysLogs(t *testing.T) {
	var b strings.Builder
	var l pandemico.SLogger = pandemico.NewSLogger(&b, false)

	l.Printf("Country [%s] closed", "US")

	assert.Contains(t, b.String(), "Country [US] closed")
	assert.Contains(t, b.String(), "level=info")
}
