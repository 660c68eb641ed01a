// Package ui implements the diskseek terminal interface using Bubbletea.
//
// The App model owns no search logic. It drives a core.Controller and
// turns the controller's event channels into Bubbletea messages.
package ui
