package service

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
)

func newTestApp(t *testing.T) *App {
	test.NewTempApp(t)
	return &App{
		inputBox:    widget.NewMultiLineEntry(),
		askButton:   widget.NewButton("Ask", nil),
		regenButton: widget.NewButton("Regenerate", nil),
		statusLabel: widget.NewLabel("Ready"),
	}
}

func TestAskReady(t *testing.T) {
	a := newTestApp(t)
	assert.False(t, a.askReady())

	a.inputBox.SetText("  question ")
	assert.True(t, a.askReady())

	a.setBusy(true, "Thinking")
	assert.False(t, a.askReady())

	a.setBusy(false, "Ready")
	assert.True(t, a.askReady())
}

func TestHandleAskWhileBusyIsIgnored(t *testing.T) {
	a := newTestApp(t)
	a.inputBox.SetText("second question")
	a.setBusy(true, "Thinking: first question")

	// session が nil のまま呼ばれても送信されないこと
	a.handleAsk()
	assert.Equal(t, "Thinking: first question", a.statusLabel.Text)
	assert.Equal(t, "second question", a.inputBox.Text)
}
