package renderer

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleCell
	StyleCellText
	StyleAnimal
	StyleAction
	StyleActionShort
	StyleDenied
	StyleSolved
	StyleSubtle
	StyleHighlight
)

// StyleText applies a style to text
func (t *TUI) StyleText(text string, style TextStyle) string {
	switch style {
	case StyleCell:
		return t.colorCell.Sprint(text)
	case StyleCellText:
		return t.colorCellText.Sprint(text)
	case StyleAnimal:
		return t.colorAnimal.Sprint(text)
	case StyleAction:
		return t.colorAction.Sprint(text)
	case StyleActionShort:
		return t.colorActionShort.Sprint(text)
	case StyleDenied:
		return t.colorDenied.Sprint(text)
	case StyleSolved:
		return t.colorSolved.Sprint(text)
	case StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case StyleHighlight:
		return t.colorHighlight.Sprint(text)
	default:
		return text
	}
}
