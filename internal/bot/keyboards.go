package bot

import (
	"github.com/mkornev/tradebot/core/telegram/keyboard"
	"github.com/mkornev/tradebot/internal/content"

	tele "gopkg.in/telebot.v4"
)

// Callback keys routed through the registry.
const (
	cbSegment        = "seg"
	cbHome           = "home"
	cbGuideGet       = "guide_get"
	cbStrategy3C     = "strat_3c"
	cbCalendar       = "edu_calendar"
	cbFAQ            = "faq_open"
	cbMenuStrategies = "menu_strategies"
)

func segmentKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🟢 I'm a beginner", Unique: cbSegment, Data: string(content.SegmentNew)},
		{Text: "🟡 I’ve tried before", Unique: cbSegment, Data: string(content.SegmentTried)},
		{Text: "🔵 I’m experienced", Unique: cbSegment, Data: string(content.SegmentPro)},
	})
}

func menuKeyboard(seg content.Segment, catalog *content.Catalog) *tele.ReplyMarkup {
	switch seg {
	case content.SegmentNew:
		return keyboard.InlineButtons([]keyboard.InlineBtn{
			{Text: "🔥 Open Demo Account", URL: catalog.DemoURL()},
			{Text: "📘 Get Quick Start Guide", Unique: cbGuideGet},
			{Text: "📱 Mobile App", URL: catalog.AppURL()},
			{Text: "⬅️ Back", Unique: cbHome},
		})
	case content.SegmentTried:
		return keyboard.InlineButtons([]keyboard.InlineBtn{
			{Text: "🔥 Open Demo", URL: catalog.DemoURL()},
			{Text: "💡 3 Candles Strategy", Unique: cbStrategy3C},
			{Text: "🗓 Economic Calendar Tips", Unique: cbCalendar},
			{Text: "⬅️ Back", Unique: cbHome},
		})
	default:
		return keyboard.InlineButtons([]keyboard.InlineBtn{
			{Text: "📈 Strategies", Unique: cbMenuStrategies},
			{Text: "🗓 Calendar", Unique: cbCalendar},
			{Text: "❓ FAQ", Unique: cbFAQ},
			{Text: "⬅️ Back", Unique: cbHome},
		})
	}
}

func leadShareKeyboard() *tele.ReplyMarkup {
	return keyboard.ContactRequest("Share phone number")
}
