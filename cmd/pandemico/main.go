// Command pandemico runs the pandemico slack bot. Secrets come from the environment (SLACK_TOKEN and
// SLACK_SIGNING_SECRET), optionally loaded from a .env file. Other settings can be set in the config
// file named by PANDEMICO_CONFIG
package main

import (
	"context"
	"errors"
	"github.com/alexandre-normand/pandemico"
	"github.com/alexandre-normand/pandemico/config"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"os"
	"os/signal"
	"syscall"
)

const (
	name = "pandemico"

	configFileEnv = "PANDEMICO_CONFIG"
)

func main() {
	log := pandemico.NewSLogger(os.Stdout, false)

	// A missing .env file is fine, the environment is used as is
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Error loading .env: %v", err)
	}

	v, err := loadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if v.GetBool(config.DebugKey) {
		log = pandemico.NewSLogger(os.Stdout, true)
	}

	p, err := pandemico.NewBot(name, v, pandemico.OptionLog(log)).
		WithClosedCountries(v.GetStringSlice(config.ClosedCountriesKey)...).
		Build()
	if err != nil {
		log.Fatalf("Error creating %s: %v", name, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = p.Run(ctx); err != nil {
		log.Fatalf("Error running %s: %v", name, err)
	}
}

// loadConfig returns the configuration layered from defaults, the optional config file and the environment
func loadConfig() (v *viper.Viper, err error) {
	v = config.NewViperWithDefaults()

	if err = config.BindEnv(v); err != nil {
		return nil, err
	}

	if configFile := os.Getenv(configFileEnv); configFile != "" {
		v.SetConfigFile(configFile)
		if err = v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return v, config.Validate(v)
}
