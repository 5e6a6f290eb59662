package services

import (
	"fmt"
	"log/slog"

	pubnub "github.com/pubnub/go/v7"

	"ticket-booking/config"
)

// Notifier pushes realtime updates to per-user channels so the web client can
// refresh without polling. Publishing is fire-and-forget; a failed publish is
// logged and dropped.
type Notifier struct {
	pn *pubnub.PubNub
}

func NewNotifier(cfg *config.Config) *Notifier {
	if cfg.PubNubPublishKey == "" || cfg.PubNubSubscribeKey == "" {
		return &Notifier{}
	}

	pnConfig := pubnub.NewConfigWithUserId(pubnub.UserId(cfg.PubNubUserID))
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	return &Notifier{pn: pubnub.NewPubNub(pnConfig)}
}

// NotifyUser publishes a message to the user's private channel.
func (n *Notifier) NotifyUser(userID string, message map[string]any) {
	if n.pn == nil {
		return
	}

	channel := fmt.Sprintf("user-%s", userID)
	go func() {
		_, _, err := n.pn.Publish().
			Channel(channel).
			Message(message).
			Execute()
		if err != nil {
			slog.Error("notifier: publish failed", "channel", channel, "error", err)
		}
	}()
}
