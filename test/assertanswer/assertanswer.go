// Package assertanswer provides testing functions to validate the answers to interactions captured
// by a capture.ChatDriverCaptor
package assertanswer

import (
	"github.com/alexandre-normand/pandemico/test/capture"
	"github.com/stretchr/testify/assert"
	"testing"
)

// HasText asserts that the answer's text is the expected text
func HasText(t *testing.T, answer *capture.Message, text string) bool {
	if assert.NotNil(t, answer) {
		return assert.Equalf(t, text, answer.Text, "Answer text expected to be [%s] but was [%s]", text, answer.Text)
	}
	return false
}

// HasTextContaining asserts that the answer's text contains the expected subString
func HasTextContaining(t *testing.T, answer *capture.Message, subString string) bool {
	if assert.NotNil(t, answer) {
		return assert.Containsf(t, answer.Text, subString, "Answer expected to have text containing [%s] but its text [%s] didn't", subString, answer.Text)
	}
	return false
}

// IsAnswerTo asserts that the answer went to the response url of the interaction rather than to a channel
func IsAnswerTo(t *testing.T, answer *capture.Message, responseURL string) bool {
	if assert.NotNil(t, answer) {
		return assert.Equalf(t, responseURL, answer.Endpoint, "Answer expected to be sent to [%s] but was sent to [%s]", responseURL, answer.Endpoint) &&
			assert.Emptyf(t, answer.Channel, "Answer expected to have no channel but was posted to [%s]", answer.Channel)
	}
	return false
}

// HasSingleAnswer asserts that there is exactly one answer and returns it
func HasSingleAnswer(t *testing.T, answers []capture.Message) (answer *capture.Message) {
	if assert.Lenf(t, answers, 1, "Expected exactly one answer but got %d: %v", len(answers), answers) {
		return &answers[0]
	}
	return nil
}
