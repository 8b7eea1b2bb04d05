package pandemico

import (
	"context"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

// ephemeralResponseType makes an answer visible only to the user who interacted
const ephemeralResponseType = "ephemeral"

// Answer holds data of an answer to an interaction. Answers are only visible to the user who
// interacted and never replace the message the user interacted with
type Answer struct {
	Text string
}

// respond sends an answer to the response url of an interaction
func (p *Pandemico) respond(ctx context.Context, responseURL string, answer Answer) (err error) {
	p.log.Debugf("Responding to [%s] with [%s]", responseURL, answer.Text)
	if _, _, err = p.chatDriver.PostMessageContext(ctx, "", slack.MsgOptionResponseURL(responseURL, ephemeralResponseType), slack.MsgOptionText(answer.Text, false)); err != nil {
		return errors.Wrapf(err, "failed to respond to interaction with [%s]", answer.Text)
	}

	return nil
}
