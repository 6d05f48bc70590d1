package bot

import (
	"context"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"
)

// operatorNotifier delivers lead notices to the operator chat. The bot
// handle appears only once the runtime is up, hence the atomic pointer.
type operatorNotifier struct {
	chatID int64
	bot    atomic.Pointer[tele.Bot]
}

func newOperatorNotifier(chatID int64) *operatorNotifier {
	return &operatorNotifier{chatID: chatID}
}

func (n *operatorNotifier) bind(b *tele.Bot) {
	n.bot.Store(b)
}

// Notify sends an HTML notice to the operator chat. A zero chat ID or an
// unbound bot silently disables notices.
func (n *operatorNotifier) Notify(_ context.Context, html string) error {
	if n.chatID == 0 {
		return nil
	}
	b := n.bot.Load()
	if b == nil {
		return nil
	}
	_, err := b.Send(tele.ChatID(n.chatID), html, &tele.SendOptions{
		ParseMode:             tele.ModeHTML,
		DisableWebPagePreview: true,
	})
	return err
}
