// Package render builds the slack block kit messages posted by pandemico
package render

import (
	"fmt"
	"github.com/alexandre-normand/pandemico/stats"
	"github.com/slack-go/slack"
	"strconv"
	"strings"
	"time"
)

// Action identifiers of the interactive elements
const (
	SubscribeActionID   = "pandemico_subscribe"
	UnsubscribeActionID = "pandemico_unsubscribe"
	CloseActionID       = "pandemico_close"
	OpenActionID        = "pandemico_open"
	HealthCheckActionID = "pandemico_health_check"
)

const (
	closedAdvice = "_*Please work from home and refrain from any travel.*_"
	openAdvice   = "_Please remain cautious and limit office visits and travel._"

	// adviceIndent mimics the indentation of the advice under its title
	adviceIndent = "      "

	// countWidth is the width counts are right-aligned to in the statistics block
	countWidth = 7

	timestampLayout = "Mon Jan 2 2006 15:04:05 MST"
)

// CountryView holds everything needed to render the data of a country to a viewer
type CountryView struct {
	Snapshot *stats.Snapshot

	// SourceURL is the url the statistics were fetched from
	SourceURL string
	FlagURL   string

	Closed bool

	// StatusUpdatedAt is the last time the closed status changed (or the time of rendering if it never did)
	StatusUpdatedAt time.Time

	// Subscribed is true if the viewer is subscribed to the country
	Subscribed bool

	Location *time.Location
}

// Summary returns a plain text summary of the country data, used as the notification text of the message
func Summary(view CountryView) string {
	return fmt.Sprintf("Latest data for %s", view.Snapshot.Name)
}

// CountryBlocks renders the statistics of a country along with its advice and the buttons to close/open the
// country and to subscribe/unsubscribe to it
func CountryBlocks(view CountryView) (blocks []slack.Block) {
	s := view.Snapshot

	data := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("Latest data for %s:\n%s", s.Name, StatsTable(s)), false, false),
		nil,
		slack.NewAccessory(slack.NewImageBlockElement(view.FlagURL, fmt.Sprintf("flag for %s", s.Name))))

	source := slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("Source: %s\nUpdated: %s", view.SourceURL, formatTimestamp(s.UpdatedAt, view.Location)), false, false))

	advice := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("Latest advice for %s:\n\n%s%s", s.Name, adviceIndent, Advice(view.Closed)), false, false),
		nil,
		slack.NewAccessory(statusButton(s.Code, view.Closed)))

	statusUpdated := slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("Updated: %s", formatTimestamp(view.StatusUpdatedAt, view.Location)), false, false))

	subscription := slack.NewActionBlock("", subscriptionButton(s.Code, view.Subscribed))

	return []slack.Block{data, source, slack.NewDividerBlock(), advice, statusUpdated, subscription}
}

// StatsTable renders the active, confirmed and deaths counts as a monospace block
func StatsTable(s *stats.Snapshot) string {
	var b strings.Builder

	b.WriteString("```")
	fmt.Fprintf(&b, "%-11s%*d (%s%%)\n", "Active:", countWidth, s.Active(), formatRate(s.Rate(s.Active())))
	fmt.Fprintf(&b, "%-11s%*d (%s%%) [Today: +%d]\n", "Confirmed:", countWidth, s.Total.Confirmed, formatRate(s.Rate(s.Total.Confirmed)), s.Today.Confirmed)
	fmt.Fprintf(&b, "%-11s%*d (%s%%) [Today: +%d]", "Deaths:", countWidth, s.Total.Deaths, formatRate(s.Rate(s.Total.Deaths)), s.Today.Deaths)
	b.WriteString("```")

	return b.String()
}

// Advice returns the advice matching the closed status of a country
func Advice(closed bool) string {
	if closed {
		return closedAdvice
	}

	return openAdvice
}

// UnavailableBlocks renders the message sent instead of the country data when it couldn't be fetched
func UnavailableBlocks(countryCode string) (blocks []slack.Block) {
	return []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, UnavailableText(countryCode), false, false),
			nil, nil),
	}
}

// UnavailableText returns the text telling that the data of a country is unavailable
func UnavailableText(countryCode string) string {
	return fmt.Sprintf(":warning: Data for `%s` is unavailable right now, please try again later.", countryCode)
}

// statusButton returns the button opening a closed country or closing an open one
func statusButton(countryCode string, closed bool) (button *slack.ButtonBlockElement) {
	if closed {
		return slack.NewButtonBlockElement(OpenActionID, countryCode, slack.NewTextBlockObject(slack.PlainTextType, "Open Country", false, false)).WithStyle(slack.StylePrimary)
	}

	return slack.NewButtonBlockElement(CloseActionID, countryCode, slack.NewTextBlockObject(slack.PlainTextType, "Close Country", false, false)).WithStyle(slack.StyleDanger)
}

// subscriptionButton returns the button to unsubscribe when subscribed or to subscribe otherwise
func subscriptionButton(countryCode string, subscribed bool) (button *slack.ButtonBlockElement) {
	if subscribed {
		return slack.NewButtonBlockElement(UnsubscribeActionID, countryCode, slack.NewTextBlockObject(slack.PlainTextType, "Unsubscribe", false, false))
	}

	return slack.NewButtonBlockElement(SubscribeActionID, countryCode, slack.NewTextBlockObject(slack.PlainTextType, "Subscribe", false, false))
}

// formatRate formats a percentage without trailing zeros
func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// formatTimestamp formats a time in the given location. A zero time is rendered as unknown
func formatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "unknown"
	}

	if loc != nil {
		t = t.In(loc)
	}

	return t.Format(timestampLayout)
}
