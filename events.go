package pandemico

import (
	"context"
	"fmt"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"strings"
	"time"
)

// handleMention posts the data of the country mentioned (i.e. "@pandemico US") to the channel of the mention.
// The country code is the second word of the message
func (p *Pandemico) handleMention(ctx context.Context, ev *slackevents.AppMentionEvent) {
	p.log.Printf("Received mention by [%s]: %s", ev.User, ev.Text)

	country, ok := mentionedCountry(ev.Text)
	if !ok {
		if _, _, err := p.chatDriver.PostMessageContext(ctx, ev.Channel, slack.MsgOptionText(p.usage(), false)); err != nil {
			p.log.Printf("Error posting usage to [%s]: %v", ev.Channel, err)
		}
		return
	}

	since := time.Now()
	err := p.PushCountryData(ctx, country, ev.Channel, ev.User)
	p.ins.pushed(ctx, pushReasonMention, since, err)
	if err != nil {
		p.log.Printf("Error answering mention by [%s] for [%s]: %v", ev.User, country, err)
	}
}

// mentionedCountry returns the (upper cased) country code of a mention
func mentionedCountry(text string) (country string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", false
	}

	return strings.ToUpper(fields[1]), true
}

// usage returns the hint answered to mentions without a country code
func (p *Pandemico) usage() string {
	return fmt.Sprintf("Mention me with a country code to get its latest data (i.e. `@%s US`)", p.name)
}
