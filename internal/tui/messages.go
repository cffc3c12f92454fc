package tui

import (
	"github.com/avbelov/gamedeck/models"
)

type sessionEventMsg struct {
	event models.Event
}

type listingLoadedMsg struct {
	accounts []models.Account
	err      error
}

type switchDoneMsg struct {
	err error
}

type loginDoneMsg struct {
	account models.Account
	err     error
}

type removedMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type refreshDoneMsg struct {
	err error
}
