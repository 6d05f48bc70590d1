package content

import "fmt"

// Segment identifies the self-declared experience level of a user.
type Segment string

const (
	SegmentNew   Segment = "new"
	SegmentTried Segment = "tried"
	SegmentPro   Segment = "pro"
)

// ValidSegment reports whether raw names a known segment.
func ValidSegment(raw string) bool {
	switch Segment(raw) {
	case SegmentNew, SegmentTried, SegmentPro:
		return true
	}
	return false
}

// Catalog renders the educational texts shown by the bot. All texts use
// Telegram HTML parse mode; outbound links are injected from config.
type Catalog struct {
	demoURL string
	appURL  string
}

// NewCatalog builds a catalog around the configured outbound links.
func NewCatalog(demoURL, appURL string) *Catalog {
	return &Catalog{demoURL: demoURL, appURL: appURL}
}

// DemoURL exposes the demo account link for keyboards.
func (c *Catalog) DemoURL() string { return c.demoURL }

// AppURL exposes the mobile app link for keyboards.
func (c *Catalog) AppURL() string { return c.appURL }

const disclaimer = "<i>Disclaimer:</i> Trading involves risk. The information here is educational only and not financial advice."

// Home is the greeting that asks the user to pick a segment.
func (c *Catalog) Home() string {
	return "👋 Welcome! I'm your trading assistant — here to help you start trading safely and confidently.\n\n" +
		"Tell me, how experienced are you with trading?"
}

// SegmentReply returns the short confirmation shown above a segment menu.
func (c *Catalog) SegmentReply(seg Segment) string {
	switch seg {
	case SegmentNew:
		return "Awesome! Let’s start with the basics 👇"
	case SegmentTried:
		return "Nice! Here’s what will help you improve 👇"
	default:
		return "Cool! For advanced traders 👇"
	}
}

// Guide is the quick start guide for beginners.
func (c *Catalog) Guide() string {
	return fmt.Sprintf(
		"📘 <b>Quick Start Guide</b>\n"+
			"1️⃣ Trade with a strategy, not emotions.\n"+
			"2️⃣ Keep risk per trade below 2%%.\n"+
			"3️⃣ Always practice on demo before real trading.\n\n"+
			"👉 <a href='%s'>Try Demo Account</a>\n\n%s",
		c.demoURL, disclaimer)
}

// Strategy3C describes the three candles entry pattern.
func (c *Catalog) Strategy3C() string {
	return fmt.Sprintf(
		"💡 <b>“3 Candles” Strategy</b>\n"+
			"• Wait for 3 candles in the same direction (up or down)\n"+
			"• Identify support/resistance on M5–M15\n"+
			"• Enter in the opposite direction for short expiry\n"+
			"• Skip trades if no level confirmation.\n\n"+
			"Practice on demo: <a href='%s'>open</a>\n\n%s",
		c.demoURL, disclaimer)
}

// CalendarTips explains how to trade around economic news.
func (c *Catalog) CalendarTips() string {
	return fmt.Sprintf(
		"🗓 <b>Economic Calendar Guide</b>\n"+
			"1️⃣ Watch high-impact events.\n"+
			"2️⃣ Reduce position size 5–10 minutes before/after news.\n"+
			"3️⃣ Avoid entering right on news — wait for confirmation.\n\n"+
			"Try this on demo: <a href='%s'>open</a>\n\n%s",
		c.demoURL, disclaimer)
}

// FAQ answers common account questions.
func (c *Catalog) FAQ() string {
	return fmt.Sprintf(
		"❓ <b>FAQ</b>\n"+
			"• <b>Withdrawals:</b> usually within 1–2 business days depending on method.\n"+
			"• <b>Deposits:</b> cards, e-wallets, crypto (see your account).\n"+
			"• <b>Mobile App:</b> <a href='%s'>download here</a>.\n\n%s",
		c.appURL, disclaimer)
}

// LeadPrompt asks the user for their contact details.
func (c *Catalog) LeadPrompt() string {
	return "Please share your contact (phone, @username or email) and a short comment."
}

// LeadThanks confirms a captured lead.
func (c *Catalog) LeadThanks() string {
	return "✅ Thanks! Our manager will contact you soon."
}
