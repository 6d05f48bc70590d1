package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContactPhoneWins(t *testing.T) {
	got := ExtractContact("call me at +1 555-123-4567 thanks", "trader")
	assert.Equal(t, "+1 555-123-4567", got)
}

func TestExtractContactEmail(t *testing.T) {
	got := ExtractContact("reach me at a.b@example.com", "trader")
	assert.Equal(t, "a.b@example.com", got)
}

func TestExtractContactPhoneBeatsEmail(t *testing.T) {
	got := ExtractContact("a.b@example.com or +7 900 123 45 67", "trader")
	assert.Equal(t, "+7 900 123 45 67", got)
}

func TestExtractContactUsernameFallback(t *testing.T) {
	got := ExtractContact("just ping me", "trader")
	assert.Equal(t, "trader", got)
}

func TestExtractContactUnknown(t *testing.T) {
	got := ExtractContact("just ping me", "")
	assert.Equal(t, "unknown", got)
}

func TestExtractContactShortDigitsNotPhone(t *testing.T) {
	// Too few digits to match the phone pattern, no email, no username.
	got := ExtractContact("room 4217", "")
	assert.Equal(t, "unknown", got)
}
