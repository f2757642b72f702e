package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/snapup/internal/models"
	"github.com/desertthunder/snapup/internal/services"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSignupDone MsgKind = iota
	MsgUploadDone
)

type signupResult struct {
	resp *services.SignupResponse
	err  error
}

type uploadResult struct {
	resp *models.UploadResponse
	err  error
}

// signupDoneMsg is the constructor for [MsgSignupDone]
func signupDoneMsg(resp *services.SignupResponse, err error) Msg {
	return Msg{kind: MsgSignupDone, data: signupResult{resp, err}}
}

// uploadDoneMsg is the constructor for [MsgUploadDone]
func uploadDoneMsg(resp *models.UploadResponse, err error) Msg {
	return Msg{kind: MsgUploadDone, data: uploadResult{resp, err}}
}
