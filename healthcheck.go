package pandemico

import (
	"context"
	"github.com/alexandre-normand/pandemico/config"
	"github.com/alexandre-normand/pandemico/render"
	"github.com/alexandre-normand/pandemico/schedule"
	"github.com/marcsantiago/gocron"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
	"time"
)

const (
	// slackbotUserID is the id of the built-in slackbot user
	slackbotUserID = "USLACKBOT"

	healthCheckTimestampLayout = "2006-01-02 15:04:05 MST"
)

// healthCheckSchedule returns the schedule of the team health check. A weekday makes it weekly, otherwise it
// runs every interval of the configured unit
func (p *Pandemico) healthCheckSchedule() schedule.Definition {
	atTime := p.config.GetString(config.HealthCheckAtTimeKey)
	if weekday := p.config.GetString(config.HealthCheckWeekdayKey); weekday != "" {
		return schedule.Weekly(weekday, atTime)
	}

	return schedule.Definition{Interval: p.config.GetUint64(config.HealthCheckIntervalKey), Unit: p.config.GetString(config.HealthCheckUnitKey), AtTime: atTime}
}

// scheduleHealthCheck adds the team health check to the scheduler, unless disabled
func (p *Pandemico) scheduleHealthCheck() (err error) {
	if !p.config.GetBool(config.HealthCheckEnabledKey) {
		p.log.Printf("Team health check disabled")
		return nil
	}

	gocron.ChangeLoc(p.timeLoc)

	d := p.healthCheckSchedule()
	j, err := schedule.NewJob(p.scheduler, d)
	if err != nil {
		return errors.Wrap(err, "invalid health check schedule")
	}

	p.log.Debugf("Adding team health check job [%s] to scheduler", d)
	j.Do(p.runHealthCheck)

	_, t := p.scheduler.NextRun()
	p.log.Printf("Team health check scheduled [%s], next run at [%s]", d, t)

	return nil
}

// runHealthCheck is the scheduled task running the team health check
func (p *Pandemico) runHealthCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.GetDuration(config.PushTimeoutKey))
	defer cancel()

	if err := p.StartHealthCheck(ctx); err != nil {
		p.log.Printf("Error running team health check: %v", err)
	}
}

// StartHealthCheck posts the health check prompt to every human member of the workspace. Failing to reach
// a member doesn't stop the others from getting the prompt
func (p *Pandemico) StartHealthCheck(ctx context.Context) (err error) {
	p.log.Printf("Initiated health check")

	members, err := p.chatDriver.ListMembers(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list members")
	}

	for _, m := range healthCheckRecipients(members) {
		if _, _, err := p.chatDriver.PostMessageContext(ctx, m.ID, slack.MsgOptionText(render.HealthCheckPromptText, false), slack.MsgOptionBlocks(render.HealthCheckBlocks(m.ID)...)); err != nil {
			p.log.Printf("Error posting health check to [%s]: %v", m.ID, err)
			continue
		}

		p.ins.healthCheckSent(ctx)
	}

	return nil
}

// healthCheckRecipients filters out bots, deleted users and slackbot from the members
func healthCheckRecipients(members []slack.User) (recipients []slack.User) {
	recipients = make([]slack.User, 0, len(members))
	for _, m := range members {
		if m.IsBot || m.Deleted || m.ID == slackbotUserID {
			continue
		}

		recipients = append(recipients, m)
	}

	return recipients
}

// openHealthCheck opens the health check modal for the user who clicked on the start button
func (p *Pandemico) openHealthCheck(ctx context.Context, triggerID string) (err error) {
	if _, err = p.chatDriver.OpenViewContext(ctx, triggerID, render.HealthCheckModal()); err != nil {
		return errors.Wrapf(err, "failed to open health check with trigger [%s]", triggerID)
	}

	return nil
}

// healthCheckSubmission holds the answers of a submitted health check
type healthCheckSubmission struct {
	Status      string
	Statements  []string
	SubmittedAt time.Time
}

// parseHealthCheckSubmission extracts the answers from the state of the submitted view
func parseHealthCheckSubmission(state *slack.ViewState, submittedAt time.Time) (submission healthCheckSubmission) {
	submission.SubmittedAt = submittedAt
	submission.Statements = make([]string, 0)
	if state == nil {
		return submission
	}

	if status, ok := state.Values[render.HealthCheckStatusBlockID][render.HealthCheckStatusActionID]; ok {
		submission.Status = status.Value
	}

	if statements, ok := state.Values[render.HealthCheckStatementsBlockID][render.HealthCheckStatementsActionID]; ok {
		for _, o := range statements.SelectedOptions {
			submission.Statements = append(submission.Statements, o.Value)
		}
	}

	return submission
}
