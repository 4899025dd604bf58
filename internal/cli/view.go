package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each tab in the TUI.
type ViewID int

const (
	ViewDashboard ViewID = iota
	ViewAlerts
	ViewProduction
	ViewInventory
	ViewData
	ViewChangeLog
)

// View is the interface every tab implements. It extends tea.Model with
// the metadata the tab bar and help line need.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // tab label
}
