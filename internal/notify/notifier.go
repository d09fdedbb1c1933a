package notify

import "context"

// Channel delivers one message over one transport. Implementations are best
// effort: failures are logged per recipient, never returned, so one dead
// channel cannot block the others or the state persist that follows.
type Channel interface {
	Send(ctx context.Context, subject, body string)
}

// Notifier fans a message out to every configured channel.
type Notifier struct {
	channels []Channel
}

func NewNotifier(channels ...Channel) *Notifier {
	return &Notifier{channels: channels}
}

func (n *Notifier) Send(ctx context.Context, subject, body string) {
	for _, ch := range n.channels {
		ch.Send(ctx, subject, body)
	}
}
