package pandemico

import (
	"context"
	"github.com/alexandre-normand/pandemico/config"
	"github.com/alexandre-normand/pandemico/registry"
	"github.com/alexandre-normand/pandemico/render"
	"github.com/alexandre-normand/pandemico/stats"
	"github.com/labstack/echo/v4"
	"github.com/marcsantiago/gocron"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	instrumentationName = "github.com/alexandre-normand/pandemico"

	shutdownTimeout = time.Duration(10) * time.Second
)

// Pandemico represents a pandemico bot instance along with its collaborators
type Pandemico struct {
	name   string
	config *viper.Viper

	log        SLogger
	chatDriver ChatDriver
	fetcher    stats.Fetcher
	meter      metric.Meter
	now        func() time.Time

	registry    *registry.Registry
	broadcaster *broadcaster
	scheduler   *gocron.Scheduler
	ins         *instrumenter
	server      *echo.Echo

	// handlers tracks the dispatched handling of events and interactions
	handlers sync.WaitGroup

	timeLoc          *time.Location
	statsURLTemplate string
	flagURLTemplate  string
}

// Option defines an option for a Pandemico
type Option func(p *Pandemico)

// OptionLog sets the logger used by pandemico
func OptionLog(logger SLogger) Option {
	return func(p *Pandemico) {
		p.log = logger
	}
}

// OptionChatDriver sets the ChatDriver used to talk to slack instead of a slack.Client built from the token
func OptionChatDriver(chatDriver ChatDriver) Option {
	return func(p *Pandemico) {
		p.chatDriver = chatDriver
	}
}

// OptionFetcher sets the stats.Fetcher used to get country statistics instead of the (caching) stats.Client
// built from the configuration
func OptionFetcher(fetcher stats.Fetcher) Option {
	return func(p *Pandemico) {
		p.fetcher = fetcher
	}
}

// OptionMeter sets the open telemetry meter. The global meter is used by default
func OptionMeter(meter metric.Meter) Option {
	return func(p *Pandemico) {
		p.meter = meter
	}
}

// OptionClock sets the function used to get the current time
func OptionClock(now func() time.Time) Option {
	return func(p *Pandemico) {
		p.now = now
	}
}

// New creates a new pandemico from the configuration. Missing configuration values are layered with
// their defaults
func New(name string, v *viper.Viper, options ...Option) (p *Pandemico, err error) {
	p = new(Pandemico)
	p.name = name
	p.config = config.LayerConfigWithDefaults(v)
	p.now = time.Now

	for _, opt := range options {
		opt(p)
	}

	if p.log == nil {
		p.log = NewSLogger(os.Stdout, v.GetBool(config.DebugKey))
	}

	if p.meter == nil {
		p.meter = otel.Meter(instrumentationName)
	}

	if p.timeLoc, err = config.GetTimeLocation(v); err != nil {
		return nil, err
	}

	if p.ins, err = newInstrumenter(name, p.meter); err != nil {
		return nil, errors.Wrap(err, "failed to create instruments")
	}

	p.statsURLTemplate = v.GetString(config.StatsURLTemplateKey)
	p.flagURLTemplate = v.GetString(config.FlagURLTemplateKey)

	if p.chatDriver == nil {
		p.chatDriver = NewSlackChatDriver(slack.New(v.GetString(config.TokenKey), slack.OptionDebug(v.GetBool(config.DebugKey))))
	}

	if p.chatDriver, err = newChatDriverWithTelemetry(p.chatDriver, name, p.meter); err != nil {
		return nil, errors.Wrap(err, "failed to create chat driver instruments")
	}

	if p.fetcher == nil {
		if p.fetcher, err = newDefaultFetcher(name, v, p.meter); err != nil {
			return nil, err
		}
	}

	p.broadcaster = &broadcaster{push: p.pushToUser, timeout: v.GetDuration(config.PushTimeoutKey), log: p.log, ins: p.ins}
	p.registry = registry.New(registry.WithPusher(p.broadcaster), registry.WithClock(p.now))
	p.broadcaster.subscribers = p.registry.Subscribers
	p.registry.OnChange(p.broadcaster.notifySubscribers)

	p.scheduler = gocron.NewScheduler()
	p.server = p.newServer(v.GetString(config.SigningSecretKey))

	return p, nil
}

// newDefaultFetcher returns a caching and instrumented stats.Client configured with the statistics url template
func newDefaultFetcher(name string, v *viper.Viper, meter metric.Meter) (fetcher stats.Fetcher, err error) {
	client := stats.NewClient(v.GetString(config.StatsURLTemplateKey), &http.Client{Timeout: v.GetDuration(config.HTTPTimeoutKey)})

	instrumented, err := stats.NewFetcherWithTelemetry(client, name, meter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fetcher instruments")
	}

	cached, err := stats.NewCachingFetcher(instrumented, v.GetInt(config.StatsCacheSizeKey), v.GetDuration(config.StatsCacheMaxAgeKey))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid stats cache size [%d]", v.GetInt(config.StatsCacheSizeKey))
	}

	return cached, nil
}

// Registry returns the registry holding the closed status and subscribers of countries
func (p *Pandemico) Registry() *registry.Registry {
	return p.registry
}

// Handler returns the http.Handler serving the slack events and interactions endpoints
func (p *Pandemico) Handler() http.Handler {
	return p.server
}

// Run starts the scheduler and the http server and blocks until the context is done or the server fails.
// Deliveries still in flight are waited for before returning
func (p *Pandemico) Run(ctx context.Context) (err error) {
	if err = p.scheduleHealthCheck(); err != nil {
		return err
	}

	stopScheduler := p.scheduler.Start()
	defer func() {
		stopScheduler <- true
		p.scheduler.Clear()
		p.wait()
	}()

	addr := ":" + strconv.Itoa(p.config.GetInt(config.PortKey))
	serverErrs := make(chan error, 1)
	go func() {
		p.log.Printf("Listening on [%s]", addr)
		serverErrs <- p.server.Start(addr)
	}()

	select {
	case err = <-serverErrs:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrapf(err, "server failed on [%s]", addr)
	case <-ctx.Done():
		p.log.Printf("Shutting down %s", p.name)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return p.server.Shutdown(shutdownCtx)
	}
}

// PushCountryData fetches the statistics of a country and posts them to the channel along with the buttons
// matching the current state of the country. The viewer is the user the subscription button is rendered for.
// If the statistics can't be fetched, a message telling that the data is unavailable is posted instead and
// the fetch error is returned
func (p *Pandemico) PushCountryData(ctx context.Context, country string, channel string, viewer string) (err error) {
	snapshot, err := p.fetcher.Fetch(ctx, country)
	if err != nil {
		p.log.Printf("Error fetching data for [%s]: %v", country, err)

		if _, _, perr := p.chatDriver.PostMessageContext(ctx, channel, slack.MsgOptionText(render.UnavailableText(country), false), slack.MsgOptionBlocks(render.UnavailableBlocks(country)...)); perr != nil {
			p.log.Printf("Error posting unavailable data message for [%s] to [%s]: %v", country, channel, perr)
		}

		return errors.Wrapf(err, "failed to fetch data for [%s]", country)
	}

	view := p.countryView(country, snapshot, viewer)

	p.log.Debugf("Posting data for [%s] to [%s]", country, channel)
	if _, _, err = p.chatDriver.PostMessageContext(ctx, channel, slack.MsgOptionText(render.Summary(view), false), slack.MsgOptionBlocks(render.CountryBlocks(view)...)); err != nil {
		return errors.Wrapf(err, "failed to post data for [%s] to [%s]", country, channel)
	}

	return nil
}

// pushToUser pushes the data of a country to a user by direct message
func (p *Pandemico) pushToUser(ctx context.Context, country string, user string) (err error) {
	return p.PushCountryData(ctx, country, user, user)
}

// countryView combines a snapshot with the state of its country as seen by the viewer
func (p *Pandemico) countryView(country string, snapshot *stats.Snapshot, viewer string) (view render.CountryView) {
	record := p.registry.Record(country)

	view.Snapshot = snapshot
	view.SourceURL = stats.URLFor(p.statsURLTemplate, country)
	view.FlagURL = stats.URLFor(p.flagURLTemplate, country)
	view.Closed = record.Closed
	view.StatusUpdatedAt = record.ClosedAt
	if view.StatusUpdatedAt.IsZero() {
		view.StatusUpdatedAt = p.now()
	}
	view.Subscribed = p.registry.IsSubscribed(country, viewer)
	view.Location = p.timeLoc

	return view
}

// dispatch handles an event or interaction on its own goroutine, after it has been acknowledged
func (p *Pandemico) dispatch(handle func(ctx context.Context)) {
	p.handlers.Add(1)

	go func() {
		defer p.handlers.Done()

		ctx, cancel := context.WithTimeout(context.Background(), p.config.GetDuration(config.PushTimeoutKey))
		defer cancel()

		handle(ctx)
	}()
}

// wait blocks until dispatched handlers and the deliveries they triggered are done
func (p *Pandemico) wait() {
	p.handlers.Wait()
	p.broadcaster.wait()
}
