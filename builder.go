package pandemico

import (
	"github.com/spf13/viper"
	"strings"
)

// Builder holds a pandemico instance to build
type Builder struct {
	bot *Pandemico
	err error
}

// NewBot returns a new Builder used to set up a new pandemico
func NewBot(name string, v *viper.Viper, options ...Option) (pb *Builder) {
	pb = new(Builder)
	pb.bot, pb.err = New(name, v, options...)

	return pb
}

// WithClosedCountries starts the pandemico instance with the given countries already closed. Blank
// country codes are ignored
func (pb *Builder) WithClosedCountries(countries ...string) *Builder {
	if pb.err != nil {
		return pb
	}

	for _, c := range countries {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			pb.bot.registry.SetClosed(c, true)
		}
	}

	return pb
}

// Build returns the built pandemico instance. If there was an error during
// setup, the error is returned along with a nil pandemico
func (pb *Builder) Build() (p *Pandemico, err error) {
	if pb.err != nil {
		return nil, pb.err
	}

	return pb.bot, nil
}
