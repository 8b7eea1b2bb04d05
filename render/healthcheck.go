package render

import (
	"github.com/slack-go/slack"
)

const (
	// HealthCheckCallbackID identifies submissions of the health check modal
	HealthCheckCallbackID = "pandemico_health_check_submission"

	// HealthCheckStatusBlockID and HealthCheckStatusActionID identify the current health status input
	HealthCheckStatusBlockID  = "health_status"
	HealthCheckStatusActionID = "health_status_input"

	// HealthCheckStatementsBlockID and HealthCheckStatementsActionID identify the checked statements
	HealthCheckStatementsBlockID  = "health_statements"
	HealthCheckStatementsActionID = "health_statements_input"

	// HealthCheckPromptText is the text of the message prompting users to perform their health check
	HealthCheckPromptText = "Please perform your regular health check."

	// HealthCheckThanksText is sent to users once their health check is submitted
	HealthCheckThanksText = "Thank you for completing your health check!"
)

// HealthCheckBlocks renders the message prompting a user to start their health check
func HealthCheckBlocks(userID string) (blocks []slack.Block) {
	prompt := slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, HealthCheckPromptText, false, false), nil, nil)
	start := slack.NewActionBlock("", slack.NewButtonBlockElement(HealthCheckActionID, userID, slack.NewTextBlockObject(slack.PlainTextType, "Start Health Check", false, false)))

	return []slack.Block{prompt, start}
}

// HealthCheckModal returns the health check modal view
func HealthCheckModal() (view slack.ModalViewRequest) {
	status := slack.NewInputBlock(HealthCheckStatusBlockID,
		slack.NewTextBlockObject(slack.PlainTextType, "Current health status", false, false),
		nil,
		slack.NewPlainTextInputBlockElement(nil, HealthCheckStatusActionID))

	statements := slack.NewInputBlock(HealthCheckStatementsBlockID,
		slack.NewTextBlockObject(slack.PlainTextType, "Please check applicable statements", false, false),
		nil,
		slack.NewCheckboxGroupsBlockElement(HealthCheckStatementsActionID,
			slack.NewOptionBlockObject("recovered", slack.NewTextBlockObject(slack.PlainTextType, "I had COVID19 and recovered.", false, false), nil),
			slack.NewOptionBlockObject("vaccinated", slack.NewTextBlockObject(slack.PlainTextType, "I received a COVID19 vaccine.", false, false), nil)))
	statements.Optional = true

	view.Type = slack.VTModal
	view.CallbackID = HealthCheckCallbackID
	view.Title = slack.NewTextBlockObject(slack.PlainTextType, "Health Check", false, false)
	view.Submit = slack.NewTextBlockObject(slack.PlainTextType, "Submit", false, false)
	view.Close = slack.NewTextBlockObject(slack.PlainTextType, "Cancel", false, false)
	view.Blocks = slack.Blocks{BlockSet: []slack.Block{status, statements}}

	return view
}
