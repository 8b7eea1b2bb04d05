package assertanswer_test

import (
	"github.com/alexandre-normand/pandemico/test/assertanswer"
	"github.com/alexandre-normand/pandemico/test/capture"
	"github.com/stretchr/testify/assert"
	"testing"
)

const responseURL = "https://hooks.slack.com/actions/T1/1/abc"

func TestHasTextNoMatch(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, false, assertanswer.HasText(mockT, &capture.Message{Text: "Country closed: US"}, "Country opened: US"))
}

func TestHasTextNilAnswer(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, false, assertanswer.HasText(mockT, nil, "Country closed: US"))
}

func TestHasTextMatch(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, true, assertanswer.HasText(mockT, &capture.Message{Text: "Country closed: US"}, "Country closed: US"))
}

func TestHasTextContainingMatch(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, true, assertanswer.HasTextContaining(mockT, &capture.Message{Text: "User subscribed: alice to US"}, "alice"))
}

func TestHasTextContainingNoMatch(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, false, assertanswer.HasTextContaining(mockT, &capture.Message{Text: "User subscribed: alice to US"}, "bob"))
}

func TestHasTextContainingNilAnswer(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, false, assertanswer.HasTextContaining(mockT, nil, "alice"))
}

func TestIsAnswerToMatch(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, true, assertanswer.IsAnswerTo(mockT, &capture.Message{Endpoint: responseURL, Text: "Country closed: US"}, responseURL))
}

func TestIsAnswerToPostedToChannel(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, false, assertanswer.IsAnswerTo(mockT, &capture.Message{Channel: "C1", Endpoint: "https://slack.com/api/chat.postMessage"}, responseURL))
}

func TestIsAnswerToNilAnswer(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, false, assertanswer.IsAnswerTo(mockT, nil, responseURL))
}

func TestHasSingleAnswer(t *testing.T) {
	mockT := new(testing.T)

	assert.NotNil(t, assertanswer.HasSingleAnswer(mockT, []capture.Message{{Text: "Country closed: US"}}))
	assert.Nil(t, assertanswer.HasSingleAnswer(mockT, []capture.Message{}))
	assert.Nil(t, assertanswer.HasSingleAnswer(mockT, []capture.Message{{Text: "a"}, {Text: "b"}}))
}
