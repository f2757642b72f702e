// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides the two forms behind a start menu:
//  1. [MenuView] : Pick a form
//  2. [SignupView] : Name, email, and (masked) password inputs
//  3. [UploadView] : Path to an image file, then the stored result
//
// Form state lives in the forms package. A submission calls Begin synchronously in Update,
// runs the request in a [tea.Cmd], and resolves the form when the Msg union delivers the outcome.
// Inputs are ignored while a request is pending and a spinner is shown instead.
//
// Keyboard navigation uses tab/shift+tab between fields, enter to submit, esc to go back,
// and ctrl+c to quit, with contextual help displayed via charmbracelet/bubbles/help.
package ui
