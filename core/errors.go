package core

import (
	"errors"
	"log"
)

// The engine favors silent no-ops over errors: a missing selection, an
// exhausted search or an empty undo stack are expected outcomes, surfaced as
// false returns. Errors exist only at the host boundary, where the clipboard
// can genuinely fail.
var (
	ErrClipboardRead  = errors.New("failed to read clipboard")
	ErrClipboardWrite = errors.New("failed to write clipboard")
	ErrNoClipboard    = errors.New("clipboard handler not set")
)

type ErrorId int

const (
	ErrCopyFailedId ErrorId = iota
	ErrCutFailedId
	ErrPasteFailedId
)

type Error struct {
	id  ErrorId
	err error
}

func (e *Editor) DispatchError(id ErrorId, err error) {
	select {
	case e.updateSignal <- ErrorSignal{id, err}:
	default:
		log.Println("Channel is full, unable to send error signal")
	}
}
