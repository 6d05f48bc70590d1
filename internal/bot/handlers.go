package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/mkornev/tradebot/core/logger"
	"github.com/mkornev/tradebot/core/telegram/callbacks"
	"github.com/mkornev/tradebot/core/telegram/format"
	tghelpers "github.com/mkornev/tradebot/core/telegram/helpers"
	"github.com/mkornev/tradebot/core/telegram/keyboard"
	"github.com/mkornev/tradebot/internal/content"
	"github.com/mkornev/tradebot/internal/leads"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

func (a *App) handleStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	user := c.Sender()

	if err := a.users.Ensure(ctx, user.ID, user.Username, strings.TrimSpace(user.FirstName+" "+user.LastName)); err != nil {
		logger.SVCUsers.LogAttrs(ctx, slog.LevelWarn, "user.ensure.fail",
			slog.Int64("user_id", user.ID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
	// /start always restarts the conversation from the top.
	if err := a.fsm.ClearState(ctx, user.ID); err != nil {
		return err
	}
	return tghelpers.SendHTML(c, a.catalog.Home(), segmentKeyboard())
}

func (a *App) handleSegment(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	raw := callbacks.CallbackPayload(c)
	if !content.ValidSegment(raw) {
		// Unknown payload, show the selector again.
		return tghelpers.EditOrSendHTML(c, a.catalog.Home(), segmentKeyboard())
	}
	seg := content.Segment(raw)

	if err := a.users.SetSegment(ctx, c.Sender().ID, raw); err != nil {
		return err
	}
	// Picking a segment ends whatever flow was pending.
	a.clearState(ctx, c.Sender().ID)
	return tghelpers.EditOrSendHTML(c, a.catalog.SegmentReply(seg), menuKeyboard(seg, a.catalog))
}

func (a *App) handleHome(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	// Going home abandons any pending flow.
	a.clearState(ctx, c.Sender().ID)
	return tghelpers.EditOrSendHTML(c, a.catalog.Home(), segmentKeyboard())
}

func (a *App) handleGuide(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := a.users.MarkGuideSent(ctx, c.Sender().ID); err != nil {
		return err
	}
	return tghelpers.SendHTML(c, a.catalog.Guide())
}

func (a *App) handleStrategy(c tele.Context) error {
	return tghelpers.SendHTML(c, a.catalog.Strategy3C())
}

func (a *App) handleCalendar(c tele.Context) error {
	return tghelpers.SendHTML(c, a.catalog.CalendarTips())
}

func (a *App) handleFAQ(c tele.Context) error {
	return tghelpers.SendHTML(c, a.catalog.FAQ())
}

func (a *App) handleLeadStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := a.fsm.SetState(ctx, c.Sender().ID, stateAwaitingContact); err != nil {
		return err
	}
	return tghelpers.SendHTML(c, a.catalog.LeadPrompt(), leadShareKeyboard())
}

// handleAwaitingContact finishes the lead flow for both structured
// contact shares and free text.
func (a *App) handleAwaitingContact(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	user := c.Sender()
	msg := c.Message()

	var in leads.CaptureInput
	in.UserID = user.ID
	in.Username = user.Username
	in.Name = strings.TrimSpace(user.FirstName + " " + user.LastName)

	if msg != nil && msg.Contact != nil {
		in.Contact = msg.Contact.PhoneNumber
		in.Comment = leads.CommentSharedContact
		in.Source = "contact"
	} else {
		text := c.Text()
		in.Contact = leads.ExtractContact(text, user.Username)
		in.Comment = text
		in.Source = "text"
	}

	if _, err := a.leads.Capture(ctx, in); err != nil {
		return err
	}
	a.clearState(ctx, user.ID)
	return tghelpers.SendHTML(c, a.catalog.LeadThanks(), keyboard.RemoveKeyboard())
}

// clearState drops the stored conversation state. A failed clear is logged
// and otherwise ignored: replies must not depend on session cleanup.
func (a *App) clearState(ctx context.Context, userID int64) {
	if err := a.fsm.ClearState(ctx, userID); err != nil {
		logger.SVCSessions.LogAttrs(ctx, slog.LevelWarn, "session.clear.fail",
			slog.Int64("user_id", userID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
}

// handleLeadList is the operator-only overview of recent leads.
func (a *App) handleLeadList(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	recent, err := a.leadList.ListRecent(ctx, 10)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		return tghelpers.SendText(c, "No leads yet.")
	}

	var b strings.Builder
	b.WriteString("📥 <b>Recent leads</b>\n")
	for _, l := range recent {
		b.WriteString("• #")
		b.WriteString(strconv.FormatInt(l.ID, 10))
		b.WriteString(": ")
		b.WriteString(format.EscapeHTML(l.Contact))
		if l.Username.Valid && l.Username.String != "" {
			b.WriteString(" (@")
			b.WriteString(format.EscapeHTML(l.Username.String))
			b.WriteString(")")
		}
		if l.Segment.Valid && l.Segment.String != "" {
			b.WriteString(" [")
			b.WriteString(format.EscapeHTML(l.Segment.String))
			b.WriteString("]")
		}
		b.WriteString("\n")
	}
	return tghelpers.SendHTML(c, b.String())
}
