// Package forms holds the state behind the signup and image upload forms, independent of how they are rendered.
//
// Each form moves through [Idle] → [Pending] → [Succeeded] | [Failed], driven by exactly one request.
// A form accepts no new submission while a request is pending.
//
// Front ends either call Submit, which runs the whole exchange synchronously (CLI, web pages),
// or split it into Begin and Resolve around an asynchronous request (the bubbletea TUI).
package forms
