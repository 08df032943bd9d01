package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/reel/pkg/tuitest"
)

func TestInfoDialog_RendersSectionsItemsBody(t *testing.T) {
	d := NewInfoDialog(
		"The Matrix",
		[]InfoSection{
			{
				Title: "Details",
				Items: []InfoItem{
					{Label: "Rating", Value: "8.2"},
					{Label: "Released", Value: "1999-03-31"},
				},
			},
		},
		"A hacker learns the truth.",
		"esc close",
		120,
		40,
	)

	out := tuitest.StripANSI(d.Overlay("bg", 120, 40))
	assert.Contains(t, out, "The Matrix")
	assert.Contains(t, out, "Details")
	assert.Contains(t, out, "Rating")
	assert.Contains(t, out, "1999-03-31")
	assert.Contains(t, out, "A hacker learns the truth.")
	assert.Contains(t, out, "esc close")
	assert.NotContains(t, out, "bg")
}

func TestInfoDialog_Scroll(t *testing.T) {
	body := strings.Repeat("line\n", 80)

	d := NewInfoDialog("Long", nil, body, "help", 70, 18)

	before := d.View()
	d.Update(tuitest.KeyDown())
	after := d.View()

	assert.Contains(t, tuitest.StripANSI(before), "Long")
	assert.Contains(t, tuitest.StripANSI(before), "%")
	assert.NotEqual(t, before, after)
}

func TestBodyWidth(t *testing.T) {
	assert.Equal(t, 72, BodyWidth(120))
	assert.Equal(t, 1, BodyWidth(0))
}

func TestOverlay_EmptyModalKeepsBackground(t *testing.T) {
	assert.Equal(t, "bg", Overlay("bg", "", 10, 10))
}
