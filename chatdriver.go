package pandemico

import (
	"context"
	"github.com/slack-go/slack"
)

// messagePoster is implemented by any value that has the PostMessageContext method.
//
// slack.Client implements this interface
type messagePoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, err error)
}

// viewOpener is implemented by any value that has the OpenViewContext method.
//
// slack.Client implements this interface
type viewOpener interface {
	OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (resp *slack.ViewResponse, err error)
}

// memberLister is implemented by any value that can list the members of the workspace
type memberLister interface {
	ListMembers(ctx context.Context) (members []slack.User, err error)
}

// ChatDriver encompasses the messagePoster, viewOpener and memberLister interfaces and is implemented by
// any value that has all methods of those interfaces. Use NewSlackChatDriver to get one backed by a slack.Client
type ChatDriver interface {
	messagePoster
	viewOpener
	memberLister
}

// slackChatDriver adapts a slack.Client to the ChatDriver interface
type slackChatDriver struct {
	*slack.Client
}

// NewSlackChatDriver returns a ChatDriver backed by the given slack client
func NewSlackChatDriver(client *slack.Client) ChatDriver {
	return slackChatDriver{Client: client}
}

// ListMembers implements memberLister by listing all users of the workspace (paginated by the slack client)
func (d slackChatDriver) ListMembers(ctx context.Context) (members []slack.User, err error) {
	return d.GetUsersContext(ctx)
}
