// Package capture provides captors standing in for slack in tests. Captors record what would have been
// sent to slack for post-execution validation
package capture

import (
	"context"
	"fmt"
	"github.com/slack-go/slack"
	"strconv"
	"sync"
)

const (
	apiURL = "https://slack.com/api/"
	token  = "xoxb-test"
)

// Message holds the details of a captured message
type Message struct {
	Channel string

	// Endpoint is the url the message would have been posted to (the response url for interaction answers)
	Endpoint string
	Text     string
	Blocks   slack.Blocks
}

// OpenedView holds the details of a captured view opening
type OpenedView struct {
	TriggerID string
	View      slack.ModalViewRequest
}

// ChatDriverCaptor captures messages posted and views opened. It is safe for concurrent use
type ChatDriverCaptor struct {
	mu       sync.Mutex
	messages []Message
	views    []OpenedView

	// Members is what's returned when listing members
	Members []slack.User

	// Failures maps channels (or response urls) to the error returned when posting to them
	Failures map[string]error

	// ListMembersErr is returned when listing members, if set
	ListMembersErr error

	currentTS int
}

// NewChatDriver returns a new ChatDriverCaptor with no members and no failures
func NewChatDriver() (c *ChatDriverCaptor) {
	c = new(ChatDriverCaptor)
	c.messages = make([]Message, 0)
	c.views = make([]OpenedView, 0)
	c.Members = make([]slack.User, 0)
	c.Failures = make(map[string]error)

	return c
}

// PostMessageContext captures a message. The message is captured even when a failure is configured for its channel
func (c *ChatDriverCaptor) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, err error) {
	endpoint, values, err := slack.UnsafeApplyMsgOptions(token, channelID, apiURL, options...)
	if err != nil {
		return "", "", err
	}

	m := Message{Channel: channelID, Endpoint: endpoint, Text: values.Get("text")}
	if blocks := values.Get("blocks"); blocks != "" {
		if err = m.Blocks.UnmarshalJSON([]byte(blocks)); err != nil {
			return "", "", fmt.Errorf("invalid blocks [%s]: %v", blocks, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, m)

	if err = c.failureFor(channelID, endpoint); err != nil {
		return "", "", err
	}

	c.currentTS = c.currentTS + 1
	return channelID, strconv.Itoa(c.currentTS), nil
}

func (c *ChatDriverCaptor) failureFor(channelID string, endpoint string) (err error) {
	if err, ok := c.Failures[channelID]; ok && channelID != "" {
		return err
	}

	return c.Failures[endpoint]
}

// OpenViewContext captures the opening of a view
func (c *ChatDriverCaptor) OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (resp *slack.ViewResponse, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.views = append(c.views, OpenedView{TriggerID: triggerID, View: view})

	return &slack.ViewResponse{}, nil
}

// ListMembers returns the configured Members
func (c *ChatDriverCaptor) ListMembers(ctx context.Context) (members []slack.User, err error) {
	if c.ListMembersErr != nil {
		return nil, c.ListMembersErr
	}

	return c.Members, nil
}

// Messages returns a copy of all captured messages in the order they were posted
func (c *ChatDriverCaptor) Messages() (messages []Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Message{}, c.messages...)
}

// MessagesTo returns the captured messages posted to a channel (or user)
func (c *ChatDriverCaptor) MessagesTo(channelID string) (messages []Message) {
	messages = make([]Message, 0)
	for _, m := range c.Messages() {
		if m.Channel == channelID {
			messages = append(messages, m)
		}
	}

	return messages
}

// MessagesAt returns the captured messages posted to an endpoint (i.e. an interaction's response url)
func (c *ChatDriverCaptor) MessagesAt(endpoint string) (messages []Message) {
	messages = make([]Message, 0)
	for _, m := range c.Messages() {
		if m.Endpoint == endpoint {
			messages = append(messages, m)
		}
	}

	return messages
}

// OpenedViews returns a copy of all captured view openings
func (c *ChatDriverCaptor) OpenedViews() (views []OpenedView) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]OpenedView{}, c.views...)
}
