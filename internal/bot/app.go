package bot

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/mkornev/tradebot/core/config"
	"github.com/mkornev/tradebot/core/logger"
	tg "github.com/mkornev/tradebot/core/telegram"
	"github.com/mkornev/tradebot/core/telegram/commands"
	"github.com/mkornev/tradebot/core/telegram/router"
	"github.com/mkornev/tradebot/core/telegram/state"
	"github.com/mkornev/tradebot/internal/content"
	"github.com/mkornev/tradebot/internal/crm"
	"github.com/mkornev/tradebot/internal/leads"
	"github.com/mkornev/tradebot/internal/storage"
	"log/slog"
)

// stateAwaitingContact is the single active conversation step: the bot
// asked for contact details and the next message finishes the lead.
const stateAwaitingContact state.State = "awaiting_contact"

const sessionPurgeInterval = time.Hour

// userDirectory is the slice of the users repository the handlers touch.
type userDirectory interface {
	Ensure(ctx context.Context, id int64, username, firstName string) error
	SetSegment(ctx context.Context, id int64, segment string) error
	MarkGuideSent(ctx context.Context, id int64) error
}

// leadBook lists captured leads for the operator view.
type leadBook interface {
	ListRecent(ctx context.Context, limit int) ([]storage.Lead, error)
}

// App wires storage, content, lead capture and CRM into a registry of
// Telegram handlers.
type App struct {
	cfg      *coreconfig.Config
	catalog  *content.Catalog
	users    userDirectory
	leadList leadBook
	sessions *storage.Sessions
	fsm      state.Manager
	leads    *leads.Service
	notifier *operatorNotifier
	reg      *tg.Registry
}

// NewApp builds the application around an open database handle.
func NewApp(cfg *coreconfig.Config, db *sqlx.DB) *App {
	users := storage.NewUsers(db)
	leadRepo := storage.NewLeads(db)
	sessions := storage.NewSessions(db, storage.DefaultSessionTTL)
	notifier := newOperatorNotifier(cfg.Telegram.AdminID)
	crmClient := crm.NewClient(cfg.CRM.WebhookURL, time.Duration(cfg.CRM.TimeoutSeconds)*time.Second)

	a := &App{
		cfg:      cfg,
		catalog:  content.NewCatalog(cfg.Links.DemoURL, cfg.Links.AppURL),
		users:    users,
		leadList: leadRepo,
		sessions: sessions,
		fsm:      state.NewStoreManager(sessions),
		leads:    leads.NewService(leadRepo, users, crmClient, notifier),
		notifier: notifier,
		reg:      tg.NewRegistry(),
	}
	a.wire()
	return a
}

func (a *App) wire() {
	a.reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Start the bot and pick your experience level",
	})
	a.reg.RegisterCommand("/lead", commands.Command{
		Handler:     a.handleLeadStart,
		Description: "Leave your contact for a manager",
	})
	// Guarded by the admin gate; with no operator configured the gate
	// rejects every caller.
	a.reg.RegisterCommand("/leads", commands.Command{
		Handler:     a.handleLeadList,
		Description: "Show recent leads",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = a.reg.RegisterCallback(cbSegment, a.handleSegment)
	_ = a.reg.RegisterCallback(cbHome, a.handleHome)
	_ = a.reg.RegisterCallback(cbGuideGet, a.handleGuide)
	_ = a.reg.RegisterCallback(cbStrategy3C, a.handleStrategy)
	_ = a.reg.RegisterCallback(cbMenuStrategies, a.handleStrategy)
	_ = a.reg.RegisterCallback(cbCalendar, a.handleCalendar)
	_ = a.reg.RegisterCallback(cbFAQ, a.handleFAQ)

	state.RegisterHandler(stateAwaitingContact, a.handleAwaitingContact)
}

// Registry exposes the wired command and callback registry.
func (a *App) Registry() *tg.Registry {
	return a.reg
}

// Middlewares returns the global middleware chain.
func (a *App) Middlewares() []tg.Middleware {
	return tg.DefaultMiddlewares(a.cfg, nil)
}

// Routes assembles callback, command and message routing.
func (a *App) Routes() []tg.Route {
	routes := []tg.Route{router.CallbackRoute(a.reg, router.CallbackOptions{})}
	routes = append(routes, router.CommandRoutes(a.reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})...)
	routes = append(routes, router.TextRoutes(a.fsm, a.reg, router.TextOptions{})...)
	return routes
}

// OnStart binds the live bot to the operator notifier and launches the
// session purge loop.
func (a *App) OnStart(ctx context.Context, rt tg.Runtime) error {
	a.notifier.bind(rt.Bot)
	go a.purgeLoop(ctx)
	return nil
}

// OnStop is a lifecycle placeholder; the purge loop stops with the run context.
func (a *App) OnStop(_ context.Context, _ tg.Runtime) error {
	return nil
}

func (a *App) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.sessions.PurgeExpired(ctx); err != nil {
				logger.SVCSessions.LogAttrs(ctx, slog.LevelWarn, "session.purge.fail",
					slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
				)
			}
		}
	}
}
