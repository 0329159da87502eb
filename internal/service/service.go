package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"Code-Assistant/internal/assistant"
	"Code-Assistant/internal/ui"
	"Code-Assistant/internal/utils"
)

const (
	appID             = "com.codeassistant.desktop"
	windowTitle       = "Code Assistant AI"
	statusQuestionLen = 60
)

type App struct {
	fyneApp fyne.App
	window  fyne.Window
	session *assistant.Session
	ctx     context.Context

	inputBox      *widget.Entry
	outputBox     *widget.RichText
	outputScroll  *container.Scroll
	historyBox    *widget.Label
	historyScroll *container.Scroll
	statusLabel   *widget.Label
	askButton     *widget.Button
	regenButton   *widget.Button
}

// windowClipboard は Fyne のクリップボードを assistant.Clipboard として使うためのアダプタです。
type windowClipboard struct{ w fyne.Window }

func (c windowClipboard) WriteAll(text string) error {
	c.w.Clipboard().SetContent(text)
	return nil
}

// NewMainApp はウィンドウを組み立てます。newSession には GUI のクリップボードが渡されます。
func NewMainApp(ctx context.Context, newSession func(assistant.Clipboard) (*assistant.Session, error)) (*App, error) {
	fyneAppInstance := app.NewWithID(appID)
	window := fyneAppInstance.NewWindow(windowTitle)
	window.Resize(fyne.NewSize(900, 700))

	a := &App{
		fyneApp: fyneAppInstance,
		window:  window,
		ctx:     ctx,
	}
	session, err := newSession(windowClipboard{w: window})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	a.session = session
	fyneAppInstance.Settings().SetTheme(ui.NewTheme(a.session.DarkMode()))

	a.inputBox = widget.NewMultiLineEntry()
	a.inputBox.SetPlaceHolder("Ask something... (Ctrl+Enter to send)")
	a.inputBox.Wrapping = fyne.TextWrapWord
	a.inputBox.SetMinRowsVisible(3)

	a.outputBox = widget.NewRichText()
	a.outputBox.Wrapping = fyne.TextWrapWord
	a.outputScroll = container.NewVScroll(a.outputBox)

	a.historyBox = widget.NewLabel("")
	a.historyBox.Wrapping = fyne.TextWrapWord
	a.historyScroll = container.NewVScroll(a.historyBox)
	a.historyScroll.SetMinSize(fyne.NewSize(0, 160))
	a.historyScroll.Hide()

	a.statusLabel = widget.NewLabel("Ready")

	for _, key := range []fyne.KeyName{fyne.KeyReturn, fyne.KeyEnter} {
		window.Canvas().AddShortcut(&desktop.CustomShortcut{
			KeyName:  key,
			Modifier: fyne.KeyModifierControl,
		}, func(fyne.Shortcut) {
			if window.Canvas().Focused() == a.inputBox && a.askReady() {
				a.handleAsk()
			}
		})
	}

	a.askButton = widget.NewButton("Ask", a.handleAsk)
	a.regenButton = widget.NewButton("Regenerate", a.handleRegenerate)
	buttons := container.NewGridWithColumns(5,
		a.askButton,
		a.regenButton,
		widget.NewButton("Copy", a.handleCopy),
		widget.NewButton("Speak", a.handleSpeak),
		widget.NewButton("Save PDF", a.handleSavePDF),
		widget.NewButton("Clear", a.handleClear),
		widget.NewButton("Show/Hide History", a.toggleHistory),
		widget.NewButton("Export History", a.handleExportHistory),
		widget.NewButton("Toggle Theme", a.toggleTheme),
	)

	top := container.NewVBox(widget.NewLabel("Your Question:"), a.inputBox, buttons, widget.NewLabel("Assistant Reply:"))
	bottom := container.NewVBox(a.historyScroll, a.statusLabel)
	window.SetContent(container.NewBorder(top, bottom, nil, nil, a.outputScroll))

	return a, nil
}

func (a *App) setBusy(busy bool, status string) {
	if busy {
		a.askButton.Disable()
		a.regenButton.Disable()
	} else {
		a.askButton.Enable()
		a.regenButton.Enable()
	}
	a.statusLabel.SetText(status)
}

// askReady は送信中でなく、入力が空でないときに true を返します。
func (a *App) askReady() bool {
	return !a.askButton.Disabled() && strings.TrimSpace(a.inputBox.Text) != ""
}

func (a *App) showReply(reply *assistant.Reply) {
	a.outputBox.Segments = ui.AnswerSegments(reply.Question, reply.Blocks)
	a.outputBox.Refresh()
	a.outputScroll.ScrollToTop()
	a.refreshHistory()
}

func (a *App) showError(err error) {
	a.outputBox.Segments = ui.ErrorSegments(fmt.Sprintf("Error: %v", err))
	a.outputBox.Refresh()
}

// handleAsk は入力欄の質問を送信します。AI 呼び出しは UI スレッドの外で行います。
func (a *App) handleAsk() {
	if !a.askReady() {
		return
	}
	question := strings.TrimSpace(a.inputBox.Text)
	log.Printf("ユーザーからの質問: %s", utils.TruncateText(question, statusQuestionLen))
	a.setBusy(true, "Thinking: "+utils.Preview(question, statusQuestionLen))

	go func() {
		reply, err := a.session.Ask(a.ctx, question)
		fyne.Do(func() {
			a.setBusy(false, "Ready")
			a.handleReply(reply, err, true)
		})
	}()
}

func (a *App) handleRegenerate() {
	a.setBusy(true, "Regenerating...")
	go func() {
		reply, err := a.session.Regenerate(a.ctx)
		fyne.Do(func() {
			a.setBusy(false, "Ready")
			if errors.Is(err, assistant.ErrNoQuestion) {
				return
			}
			a.handleReply(reply, err, false)
		})
	}()
}

func (a *App) handleReply(reply *assistant.Reply, err error, clearInput bool) {
	if reply != nil && !reply.Empty() {
		a.showReply(reply)
		if clearInput {
			a.inputBox.SetText("")
		}
	}
	if err != nil {
		log.Printf("AI request failed: %v", err)
		if reply != nil && !reply.Empty() {
			dialog.ShowError(err, a.window)
			return
		}
		a.showError(err)
	}
}

func (a *App) handleCopy() {
	if err := a.session.Copy(ui.PlainText(a.outputBox.Segments)); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.statusLabel.SetText("Copied to clipboard")
}

func (a *App) handleSpeak() {
	text := ui.PlainText(a.outputBox.Segments)
	a.statusLabel.SetText("Speaking...")
	go func() {
		err := a.session.Speak(a.ctx, text)
		fyne.Do(func() {
			a.statusLabel.SetText("Ready")
			if err != nil {
				log.Printf("Text-to-Speech error: %v", err)
				a.outputBox.Segments = append(a.outputBox.Segments, ui.ErrorSegments("Text-to-Speech error: "+err.Error())...)
				a.outputBox.Refresh()
			}
		})
	}()
}

func (a *App) handleSavePDF() {
	if _, ans := a.session.Current(); ans == "" {
		return
	}
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if w == nil {
			return
		}
		w, err = a.saveTarget(w, ".pdf")
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		defer w.Close()
		if err := a.session.WritePDF(w); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.statusLabel.SetText("Saved " + w.URI().Name())
	}, a.window)
	d.SetFileName("answer.pdf")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	d.Show()
}

// saveTarget は拡張子のないファイル名が選ばれたとき、ダイアログが作った
// 空ファイルを削除して ext 付きの名前で開き直します。
func (a *App) saveTarget(w fyne.URIWriteCloser, ext string) (fyne.URIWriteCloser, error) {
	target, changed, err := ui.WithExtURI(w.URI(), ext)
	if err != nil || !changed {
		if err != nil {
			w.Close()
		}
		return w, err
	}
	orig := w.URI()
	w.Close()
	if err := storage.Delete(orig); err != nil {
		log.Printf("failed to remove %s: %v", orig, err)
	}
	return storage.Writer(target)
}

func (a *App) handleExportHistory() {
	text := a.session.HistoryText()
	if text == "" {
		return
	}
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if w == nil {
			return
		}
		w, err = a.saveTarget(w, ".txt")
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		defer w.Close()
		if _, err := w.Write([]byte(text)); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.statusLabel.SetText("Exported history to " + w.URI().Name())
	}, a.window)
	d.SetFileName("history.txt")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
	d.Show()
}

func (a *App) handleClear() {
	a.inputBox.SetText("")
	a.outputBox.Segments = nil
	a.outputBox.Refresh()
	a.session.Clear()
}

func (a *App) refreshHistory() {
	if a.historyScroll.Visible() {
		a.historyBox.SetText(a.session.HistoryText())
	}
}

func (a *App) toggleHistory() {
	if a.historyScroll.Visible() {
		a.historyScroll.Hide()
		return
	}
	a.historyScroll.Show()
	a.refreshHistory()
}

func (a *App) toggleTheme() {
	dark, err := a.session.ToggleTheme()
	if err != nil {
		log.Printf("テーマ設定の保存に失敗しました: %v", err)
	}
	a.fyneApp.Settings().SetTheme(ui.NewTheme(dark))
}

// Run is the main entry point of the application
func (a *App) Run() {
	a.window.ShowAndRun()
}
