package leads

import (
	"context"
	"fmt"

	"github.com/mkornev/tradebot/core/logger"
	"github.com/mkornev/tradebot/core/metrics"
	"github.com/mkornev/tradebot/core/telegram/format"
	"github.com/mkornev/tradebot/internal/crm"
	"github.com/mkornev/tradebot/internal/storage"
	"log/slog"
)

// CommentSharedContact marks leads produced by Telegram's structured
// contact share instead of free text.
const CommentSharedContact = "(shared contact)"

// LeadStore persists captured leads.
type LeadStore interface {
	Insert(ctx context.Context, lead storage.Lead) (int64, error)
}

// SegmentSource resolves the stored segment of a user.
type SegmentSource interface {
	Segment(ctx context.Context, userID int64) (string, error)
}

// Pusher forwards a captured lead to an external system.
type Pusher interface {
	PushLead(ctx context.Context, event crm.LeadEvent)
}

// Notifier delivers operator notices.
type Notifier interface {
	Notify(ctx context.Context, html string) error
}

// CaptureInput carries everything known about a lead submission.
type CaptureInput struct {
	UserID   int64
	Username string
	Name     string
	Contact  string
	Comment  string
	// Source labels how the contact arrived: "contact" or "text".
	Source string
}

// Service implements the lead capture flow: persist, then notify the
// operator and forward to CRM in the background. Only persistence
// failures surface to the caller; notification and CRM are best-effort
// and never delay the user-visible confirmation.
type Service struct {
	store    LeadStore
	segments SegmentSource
	pusher   Pusher
	notifier Notifier
}

// NewService wires the capture flow. pusher and notifier may be nil.
func NewService(store LeadStore, segments SegmentSource, pusher Pusher, notifier Notifier) *Service {
	return &Service{store: store, segments: segments, pusher: pusher, notifier: notifier}
}

// Capture stores the lead and fans out the side effects.
func (s *Service) Capture(ctx context.Context, in CaptureInput) (int64, error) {
	segment := ""
	if s.segments != nil {
		seg, err := s.segments.Segment(ctx, in.UserID)
		if err != nil {
			logger.SVCLeads.LogAttrs(ctx, slog.LevelWarn, "lead.segment.lookup_fail",
				slog.Int64("user_id", in.UserID),
				slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			)
		} else {
			segment = seg
		}
	}

	leadID, err := s.store.Insert(ctx, storage.Lead{
		UserID:   in.UserID,
		Username: storage.NullString(in.Username),
		Name:     storage.NullString(in.Name),
		Contact:  in.Contact,
		Segment:  storage.NullString(segment),
		Comment:  storage.NullString(in.Comment),
	})
	if err != nil {
		return 0, fmt.Errorf("leads: capture: %w", err)
	}

	source := in.Source
	if source == "" {
		source = "text"
	}
	metrics.LeadsCaptured.WithLabelValues(source).Inc()
	logger.SVCLeads.LogAttrs(ctx, slog.LevelInfo, "lead.captured",
		slog.Int64("lead_id", leadID),
		slog.Int64("user_id", in.UserID),
		slog.String("segment", segment),
		slog.String("source", source),
	)

	// A slow operator chat or CRM endpoint must not hold up the
	// confirmation the sender is waiting for.
	go s.fanOut(ctx, leadID, segment, in)

	return leadID, nil
}

func (s *Service) fanOut(ctx context.Context, leadID int64, segment string, in CaptureInput) {
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, s.operatorNotice(in)); err != nil {
			logger.SVCLeads.LogAttrs(ctx, slog.LevelWarn, "lead.notify.fail",
				slog.Int64("lead_id", leadID),
				slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			)
		}
	}

	if s.pusher != nil {
		s.pusher.PushLead(ctx, crm.LeadEvent{
			LeadID:   leadID,
			UserID:   in.UserID,
			Username: in.Username,
			Name:     in.Name,
			Contact:  in.Contact,
			Segment:  segment,
			Comment:  in.Comment,
		})
	}
}

func (s *Service) operatorNotice(in CaptureInput) string {
	name := in.Name
	if name == "" {
		name = "unknown"
	}
	return fmt.Sprintf(
		"📥 <b>New Lead</b>\n"+
			"User: <a href='tg://user?id=%d'>%s</a> (@%s)\n"+
			"Contact: %s\nComment: %s",
		in.UserID,
		format.EscapeHTML(name),
		format.EscapeHTML(in.Username),
		format.EscapeHTML(in.Contact),
		format.EscapeHTML(in.Comment),
	)
}
