package pandemico

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"io"
	"net/http"
)

const (
	// EventsPath is the path of the slack events api endpoint
	EventsPath = "/events"
	// InteractionsPath is the path of the slack interactivity endpoint
	InteractionsPath = "/interactions"
	// HealthzPath is the path of the liveness endpoint
	HealthzPath = "/healthz"

	bodyContextKey = "pandemico.body"
	payloadFormKey = "payload"
)

// newServer returns the echo server routing slack requests. Requests to the slack endpoints must be signed
// with the signing secret
func (p *Pandemico) newServer(signingSecret string) (e *echo.Echo) {
	e = echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	verified := verifySignature(signingSecret)
	e.POST(EventsPath, p.handleEvents, verified)
	e.POST(InteractionsPath, p.handleInteractions, verified)

	e.GET(HealthzPath, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return e
}

// verifySignature returns the middleware rejecting requests not signed with the signing secret. The
// verified body is put back on the request and kept in the context for handlers
func verifySignature(signingSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			body, err := io.ReadAll(req.Body)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
			}

			sv, err := slack.NewSecretsVerifier(req.Header, signingSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or expired signature")
			}

			if _, err = sv.Write(body); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid signature")
			}

			if err = sv.Ensure(); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid signature")
			}

			req.Body = io.NopCloser(bytes.NewReader(body))
			c.Set(bodyContextKey, body)

			return next(c)
		}
	}
}

// handleEvents answers url verification challenges and dispatches app mentions. Other events are
// acknowledged and ignored
func (p *Pandemico) handleEvents(c echo.Context) error {
	body, _ := c.Get(bodyContextKey).([]byte)

	ev, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed event")
	}

	switch ev.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err = json.Unmarshal(body, &challenge); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "malformed url verification")
		}

		return c.String(http.StatusOK, challenge.Challenge)

	case slackevents.CallbackEvent:
		p.ins.eventReceived(c.Request().Context(), ev.InnerEvent.Type)

		switch inner := ev.InnerEvent.Data.(type) {
		case *slackevents.AppMentionEvent:
			p.dispatch(func(ctx context.Context) {
				p.handleMention(ctx, inner)
			})
		default:
			p.log.Debugf("Ignoring event of type [%s]", ev.InnerEvent.Type)
		}
	}

	return c.NoContent(http.StatusOK)
}

// handleInteractions decodes the interaction payload and dispatches it
func (p *Pandemico) handleInteractions(c echo.Context) error {
	payload := c.FormValue(payloadFormKey)
	if payload == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing payload")
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed payload")
	}

	p.dispatch(func(ctx context.Context) {
		if err := p.handleInteraction(ctx, callback); err != nil {
			p.log.Printf("Error handling interaction [%s] from [%s]: %v", callback.Type, callback.User.ID, err)
		}
	})

	return c.NoContent(http.StatusOK)
}
