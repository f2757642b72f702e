package ui

import (
	"github.com/charmbracelet/bubbles/list"
)

var _ list.Item = menuItem{}

// menuItem is an entry of the start menu that opens a form view.
type menuItem struct {
	title string
	desc  string
	view  ViewState
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }

func menuItems() []list.Item {
	return []list.Item{
		menuItem{title: "Sign up", desc: "Create an account with name, email, and password", view: SignupView},
		menuItem{title: "Upload image", desc: "Send an image file and see where it is stored", view: UploadView},
	}
}
