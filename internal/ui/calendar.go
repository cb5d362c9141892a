package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
)

// Calendar grid layout
const (
	CalendarCellCount   = 35
	CalendarDayOffset   = 3
	CalendarDaysInMonth = 31
	CalendarEventDay    = 15
	CalendarDotDay      = 22
)

// CalendarCell is one slot of the month grid; Day is zero for blanks
type CalendarCell struct {
	Day   int
	Event bool
	Dot   bool
}

// IsBlank reports whether the cell shows no day
func (c CalendarCell) IsBlank() bool {
	return c.Day == 0
}

// CalendarCells returns the static month grid, Monday first
func CalendarCells() []CalendarCell {
	cells := make([]CalendarCell, CalendarCellCount)
	for i := range cells {
		day := i - CalendarDayOffset
		if day < 1 || day > CalendarDaysInMonth {
			continue
		}
		cells[i] = CalendarCell{
			Day:   day,
			Event: day == CalendarEventDay,
			Dot:   day == CalendarDotDay,
		}
	}
	return cells
}

// newCalendarView builds the month card
func newCalendarView(loc *Localization) fyne.CanvasObject {
	header := canvas.NewText(loc.GetText(KeyCalendarMonth), theme.Color(theme.ColorNameForeground))
	header.TextStyle = fyne.TextStyle{Bold: true}
	header.TextSize = theme.Size(theme.SizeNameSubHeadingText)

	grid := container.NewGridWithColumns(7)
	for _, day := range loc.Weekdays() {
		label := canvas.NewText(day, ColorMuted)
		label.Alignment = fyne.TextAlignCenter
		label.TextSize = theme.Size(theme.SizeNameCaptionText)
		grid.Add(label)
	}
	for _, cell := range CalendarCells() {
		grid.Add(newCalendarCellView(cell))
	}

	return container.NewVBox(header, grid)
}

func newCalendarCellView(cell CalendarCell) fyne.CanvasObject {
	if cell.IsBlank() {
		return layout.NewSpacer()
	}

	text := canvas.NewText(strconv.Itoa(cell.Day), theme.Color(theme.ColorNameForeground))
	text.Alignment = fyne.TextAlignCenter

	background := canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	background.CornerRadius = CalendarCellSize / 2
	background.SetMinSize(fyne.NewSize(CalendarCellSize, CalendarCellSize))

	if cell.Event {
		background.FillColor = ColorAccent
		text.Color = color.White
		text.TextStyle = fyne.TextStyle{Bold: true}
	}

	objects := []fyne.CanvasObject{background, container.NewCenter(text)}
	if cell.Dot {
		dot := canvas.NewRectangle(ColorDot)
		dot.CornerRadius = CalendarDotRadius
		dot.SetMinSize(fyne.NewSize(CalendarDotRadius*2, CalendarDotRadius*2))
		objects = append(objects, container.NewBorder(nil, container.NewCenter(dot), nil, nil))
	}
	return container.NewStack(objects...)
}
