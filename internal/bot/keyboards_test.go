package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkornev/tradebot/internal/content"
)

func TestSegmentKeyboardLayout(t *testing.T) {
	kb := segmentKeyboard()
	require.Len(t, kb.InlineKeyboard, 3)

	var payloads []string
	for _, row := range kb.InlineKeyboard {
		require.Len(t, row, 1)
		assert.Equal(t, cbSegment, row[0].Unique)
		payloads = append(payloads, row[0].Data)
	}
	assert.Equal(t, []string{"new", "tried", "pro"}, payloads)
}

func TestMenuKeyboardsPerSegment(t *testing.T) {
	catalog := content.NewCatalog("https://demo.example", "https://app.example")

	newKB := menuKeyboard(content.SegmentNew, catalog)
	require.Len(t, newKB.InlineKeyboard, 4)
	assert.Equal(t, "https://demo.example", newKB.InlineKeyboard[0][0].URL)
	assert.Equal(t, cbGuideGet, newKB.InlineKeyboard[1][0].Unique)
	assert.Equal(t, "https://app.example", newKB.InlineKeyboard[2][0].URL)
	assert.Equal(t, cbHome, newKB.InlineKeyboard[3][0].Unique)

	triedKB := menuKeyboard(content.SegmentTried, catalog)
	require.Len(t, triedKB.InlineKeyboard, 4)
	assert.Equal(t, cbStrategy3C, triedKB.InlineKeyboard[1][0].Unique)
	assert.Equal(t, cbCalendar, triedKB.InlineKeyboard[2][0].Unique)

	proKB := menuKeyboard(content.SegmentPro, catalog)
	require.Len(t, proKB.InlineKeyboard, 4)
	assert.Equal(t, cbMenuStrategies, proKB.InlineKeyboard[0][0].Unique)
	assert.Equal(t, cbFAQ, proKB.InlineKeyboard[2][0].Unique)
}

func TestLeadShareKeyboardRequestsContact(t *testing.T) {
	kb := leadShareKeyboard()
	require.Len(t, kb.ReplyKeyboard, 1)
	require.Len(t, kb.ReplyKeyboard[0], 1)
	assert.True(t, kb.ReplyKeyboard[0][0].Contact)
	assert.True(t, kb.OneTimeKeyboard)
}
