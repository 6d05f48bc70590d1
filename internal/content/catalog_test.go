package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSegment(t *testing.T) {
	assert.True(t, ValidSegment("new"))
	assert.True(t, ValidSegment("tried"))
	assert.True(t, ValidSegment("pro"))
	assert.False(t, ValidSegment(""))
	assert.False(t, ValidSegment("vip"))
	assert.False(t, ValidSegment("New"))
}

func TestCatalogInjectsLinks(t *testing.T) {
	c := NewCatalog("https://demo.example", "https://app.example")

	assert.Contains(t, c.Guide(), "https://demo.example")
	assert.Contains(t, c.Strategy3C(), "https://demo.example")
	assert.Contains(t, c.CalendarTips(), "https://demo.example")
	assert.Contains(t, c.FAQ(), "https://app.example")
}

func TestCatalogTextsCarryDisclaimer(t *testing.T) {
	c := NewCatalog("https://demo.example", "https://app.example")

	for name, text := range map[string]string{
		"guide":    c.Guide(),
		"strategy": c.Strategy3C(),
		"calendar": c.CalendarTips(),
		"faq":      c.FAQ(),
	} {
		assert.Contains(t, text, "<i>Disclaimer:</i>", "text %s must carry the disclaimer", name)
	}
}

func TestSegmentReplyPerSegment(t *testing.T) {
	c := NewCatalog("", "")
	assert.NotEqual(t, c.SegmentReply(SegmentNew), c.SegmentReply(SegmentTried))
	assert.NotEqual(t, c.SegmentReply(SegmentTried), c.SegmentReply(SegmentPro))
}
