package frontend

import "github.com/gdamore/tcell/v2"

// Theme holds the styles the renderer draws with.
type Theme struct {
	Text      tcell.Style
	Filler    tcell.Style // rows past the end of the buffer
	Selection tcell.Style
	Cursor    tcell.Style // head of a secondary selection
	Primary   tcell.Style // head of the primary selection

	Status     tcell.Style
	StatusMode tcell.Style
	Message    tcell.Style
	Error      tcell.Style
	Command    tcell.Style
}

// DefaultTheme uses palette colors so it works on 256-color terminals.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Text:      base,
		Filler:    base.Foreground(tcell.ColorGray).Dim(true),
		Selection: base.Background(tcell.PaletteColor(24)).Foreground(tcell.ColorWhite),
		Cursor:    base.Background(tcell.PaletteColor(67)).Foreground(tcell.ColorBlack),
		Primary:   base.Reverse(true),

		Status:     base.Background(tcell.PaletteColor(236)).Foreground(tcell.ColorSilver),
		StatusMode: base.Background(tcell.PaletteColor(31)).Foreground(tcell.ColorWhite).Bold(true),
		Message:    base,
		Error:      base.Foreground(tcell.ColorRed).Bold(true),
		Command:    base,
	}
}
