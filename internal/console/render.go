package console

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Versifine/cellstage/internal/control"
	"github.com/Versifine/cellstage/internal/vmath"
)

const helpLine = "move: bound keys  reproduce: cheat key  tab: toggle control  esc: quit"

var (
	styleTitle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleText  = tcell.StyleDefault
	styleWarn  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHelp  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

type statusLine struct {
	text  string
	style tcell.Style
}

func (c *Console) draw() {
	c.screen.Clear()
	width, height := c.screen.Size()
	lines := c.statusLines()
	for y, line := range lines {
		if y >= height-1 {
			break
		}
		drawText(c.screen, 0, y, width, line.text, line.style)
	}
	if height > 0 {
		drawText(c.screen, 0, height-1, width, helpLine, styleHelp)
	}
	c.screen.Show()
}

func (c *Console) statusLines() []statusLine {
	state := "enabled"
	if !c.pmc.Enabled() {
		state = "disabled"
	}
	lines := []statusLine{
		{fmt.Sprintf("cellstage  tick=%d  control=%s  session=%s", c.world.Tick(), state, c.session), styleTitle},
		{fmt.Sprintf("held %s  movement=%s", formatHeld(c.pmc.Held()), formatVec3(c.pmc.Movement())), styleText},
	}

	nx, ny := c.cursor.NormalizedCursor()
	if look, ok := c.system.LastLookPoint(); ok {
		lines = append(lines, statusLine{fmt.Sprintf("cursor (%.2f, %.2f)  look=%s", nx, ny, formatVec3(look)), styleText})
	} else {
		lines = append(lines, statusLine{fmt.Sprintf("cursor (%.2f, %.2f)  look=-", nx, ny), styleWarn})
	}

	entity, ok := c.player.ActiveCreature()
	if !ok {
		lines = append(lines, statusLine{"no active creature", styleWarn})
	} else if ctrl, alive := c.world.Control(entity); alive {
		lines = append(lines,
			statusLine{fmt.Sprintf("microbe %v  organelle points=%d", entity, len(c.world.OrganellePoints(entity))), styleText},
			statusLine{fmt.Sprintf("control move=%s look=%s tick=%d", formatVec3(ctrl.Movement), formatVec3(ctrl.LookAt), ctrl.Tick), styleText},
		)
	} else {
		lines = append(lines, statusLine{fmt.Sprintf("microbe %v is gone", entity), styleWarn})
	}

	stats := c.system.Stats()
	lines = append(lines, statusLine{
		fmt.Sprintf("dispatched=%d skipped=%d failed=%d", stats.Dispatched, stats.Skipped, stats.Failed),
		styleText,
	})
	return lines
}

func formatHeld(h control.HeldKeys) string {
	return fmt.Sprintf("F[%s] B[%s] L[%s] R[%s]", mark(h.Forward), mark(h.Backward), mark(h.Left), mark(h.Right))
}

func mark(on bool) string {
	if on {
		return "x"
	}
	return " "
}

func formatVec3(v vmath.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
