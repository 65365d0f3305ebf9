package terminal

import "github.com/charmbracelet/lipgloss"

// ink selects the style a canvas cell is drawn with.
type ink int

const (
	inkNone ink = iota
	inkBlock
	inkSelected
	inkDragging
	inkControl
)

var (
	BlockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	DraggingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Bold(true)

	ControlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	HintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func styleFor(i ink) lipgloss.Style {
	switch i {
	case inkSelected:
		return SelectedStyle
	case inkDragging:
		return DraggingStyle
	case inkControl:
		return ControlStyle
	default:
		return BlockStyle
	}
}
