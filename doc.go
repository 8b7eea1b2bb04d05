/*
Package pandemico provides a slack bot sharing the latest pandemic statistics of countries.

Mentioning the bot with a country code (i.e. "@pandemico US") posts the latest statistics of that country
along with the advice matching its closed status. The message comes with buttons to close or open the
country and to subscribe to it. Subscribers get the data of a country by direct message when they
subscribe and again whenever its closed status changes.

The closed status and subscribers of countries are kept in memory by a registry.Registry and are lost on
restart. A weekly team health check can also be scheduled: every member of the workspace then gets a
prompt opening a health check form.

Slack talks to pandemico over http (see EventsPath and InteractionsPath) and every request must be
signed with the app's signing secret.

Example code:

	package main

	import (
		"context"
		"github.com/alexandre-normand/pandemico"
		"github.com/alexandre-normand/pandemico/config"
		"log"
	)

	func main() {
		v := config.NewViperWithDefaults()
		if err := config.BindEnv(v); err != nil {
			log.Fatal(err)
		}

		p, err := pandemico.NewBot("pandemico", v).
			WithClosedCountries("IT", "ES").
			Build()
		if err != nil {
			log.Fatal(err)
		}

		if err = p.Run(context.Background()); err != nil {
			log.Fatal(err)
		}
	}
*/
package pandemico
