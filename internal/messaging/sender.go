// Package messaging delivers short messages to users over email and SMS.
package messaging

import (
	"context"

	logrus "github.com/sirupsen/logrus"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Message is one outbound notification. Subject is ignored by SMS.
type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// runWithContext runs a blocking client call and returns early when ctx ends.
// The call itself keeps running until its own network timeout.
func runWithContext(ctx context.Context, call func() error) error {
	done := make(chan error, 1)
	go func() { done <- call() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogSender stands in for a channel that has no provider configured. The body
// carries live reset codes, so it is never logged.
type LogSender struct {
	Channel string
	Log     *logrus.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Log.WithFields(logrus.Fields{"channel": s.Channel, "to": msg.To}).
		Warn("delivery channel not configured, message not sent")
	return nil
}
