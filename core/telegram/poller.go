package telegram

import (
	"time"

	tele "gopkg.in/telebot.v4"
)

// BuildLongPoller returns a long-polling poller with the given timeout in seconds.
func BuildLongPoller(timeoutSec int) tele.Poller {
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	return &tele.LongPoller{Timeout: time.Duration(timeoutSec) * time.Second}
}
