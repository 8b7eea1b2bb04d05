package pandemico

import (
	"context"
	"fmt"
	"github.com/alexandre-normand/pandemico/render"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

// handleInteraction handles the block actions and view submissions of users. Block actions are answered
// to the response url of the interaction
func (p *Pandemico) handleInteraction(ctx context.Context, callback slack.InteractionCallback) (err error) {
	p.log.Printf("Received interaction: %s", callback.Type)
	p.ins.interactionReceived(ctx, string(callback.Type))

	switch callback.Type {
	case slack.InteractionTypeBlockActions:
		for _, action := range callback.ActionCallback.BlockActions {
			answer := p.handleBlockAction(ctx, callback, action)
			if answer == nil {
				continue
			}

			if err = p.respond(ctx, callback.ResponseURL, *answer); err != nil {
				p.log.Printf("Error answering action [%s]: %v", action.ActionID, err)
			}
		}

		return nil

	case slack.InteractionTypeViewSubmission:
		return p.handleViewSubmission(ctx, callback)

	default:
		return p.respond(ctx, callback.ResponseURL, Answer{Text: fmt.Sprintf("Sorry, I don't recognize this type of interaction: %s", callback.Type)})
	}
}

// handleBlockAction applies a single action and returns the answer to it, if any
func (p *Pandemico) handleBlockAction(ctx context.Context, callback slack.InteractionCallback, action *slack.BlockAction) (answer *Answer) {
	country := action.Value
	p.log.Debugf("Handling action [%s] with value [%s] from [%s]", action.ActionID, country, callback.User.ID)

	switch action.ActionID {
	case render.SubscribeActionID:
		p.registry.SetSubscribed(country, callback.User.ID, true)
		return &Answer{Text: fmt.Sprintf("User subscribed: %s to %s", callback.User.Name, country)}

	case render.UnsubscribeActionID:
		p.registry.SetSubscribed(country, callback.User.ID, false)
		return &Answer{Text: fmt.Sprintf("User unsubscribed: %s from %s", callback.User.Name, country)}

	case render.CloseActionID:
		p.registry.SetClosed(country, true)
		return &Answer{Text: fmt.Sprintf("Country closed: %s", country)}

	case render.OpenActionID:
		p.registry.SetClosed(country, false)
		return &Answer{Text: fmt.Sprintf("Country opened: %s", country)}

	case render.HealthCheckActionID:
		if err := p.openHealthCheck(ctx, callback.TriggerID); err != nil {
			p.log.Printf("Error opening health check for [%s]: %v", callback.User.ID, err)
			return &Answer{Text: "Sorry, I couldn't open the health check, please try again later."}
		}

		return nil

	default:
		return &Answer{Text: fmt.Sprintf("Sorry, I don't recognize this action: %s", action.ActionID)}
	}
}

// handleViewSubmission thanks users for their health check by direct message since view submissions
// don't come with a response url
func (p *Pandemico) handleViewSubmission(ctx context.Context, callback slack.InteractionCallback) (err error) {
	if callback.View.CallbackID != render.HealthCheckCallbackID {
		p.log.Printf("Ignoring submission of unknown view [%s] from [%s]", callback.View.CallbackID, callback.User.ID)
		return nil
	}

	submission := parseHealthCheckSubmission(callback.View.State, p.now())
	p.log.Printf("Health check submitted by [%s] at [%s]: status [%s], statements %v", callback.User.ID, submission.SubmittedAt.In(p.timeLoc).Format(healthCheckTimestampLayout), submission.Status, submission.Statements)

	if _, _, err = p.chatDriver.PostMessageContext(ctx, callback.User.ID, slack.MsgOptionText(render.HealthCheckThanksText, false)); err != nil {
		return errors.Wrapf(err, "failed to thank [%s] for their health check", callback.User.ID)
	}

	return nil
}
