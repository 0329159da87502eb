package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"

	"Code-Assistant/internal/history"
)

// WithExtURI は保存先の URI に拡張子がなければ付け足します。
// changed は URI を差し替えたかどうかです。
func WithExtURI(u fyne.URI, ext string) (target fyne.URI, changed bool, err error) {
	s := history.WithExt(u.String(), ext)
	if s == u.String() {
		return u, false, nil
	}
	target, err = storage.ParseURI(s)
	if err != nil {
		return nil, false, err
	}
	return target, true, nil
}
