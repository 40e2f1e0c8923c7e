// Package render provides the terminal implementations of the device's
// presentation collaborators: a content renderer standing in for the
// e-paper display, and a status line standing in for the RGB indicator.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/brownbearcreative/bard/internal/engine"
	"github.com/brownbearcreative/bard/internal/host"
)

const rule = "────────────────────────────"

// Console renders content frames to a writer.
type Console struct {
	w      io.Writer
	header *color.Color
	warn   *color.Color
}

// NewConsole creates a renderer writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:      w,
		header: color.New(color.FgCyan, color.Bold),
		warn:   color.New(color.FgYellow),
	}
}

// Title renders the boot banner.
func (c *Console) Title() {
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, "Brown Bear Creative presents...")
	c.header.Fprintln(c.w, "The Bard's Assistant")
	fmt.Fprintln(c.w)
}

// Render prints one framed content block with its reason and intent
// headers.
func (c *Console) Render(index int, line string, intent engine.Intent, reason host.RenderReason) {
	fmt.Fprintln(c.w, rule)
	c.header.Fprintln(c.w, reasonLabel(reason))
	if lbl := intentLabel(intent); lbl != "" {
		fmt.Fprintln(c.w, lbl)
	}
	fmt.Fprintln(c.w, line)
	fmt.Fprintln(c.w, rule)
}

// Unavailable renders the "nothing available" state.
func (c *Console) Unavailable() {
	fmt.Fprintln(c.w, rule)
	c.warn.Fprintln(c.w, "[WARN] No content available.")
	fmt.Fprintln(c.w, rule)
}

func reasonLabel(reason host.RenderReason) string {
	switch reason {
	case host.ReasonBoot:
		return "[Boot]"
	case host.ReasonWake:
		return "[Wake]"
	case host.ReasonOperationStart:
		return "[Starting]"
	case host.ReasonOperationComplete:
		return "[Done]"
	case host.ReasonUserTap:
		return "[Tap]"
	default:
		return "[?]"
	}
}

func intentLabel(intent engine.Intent) string {
	switch intent {
	case engine.IntentNewRandom:
		return "(Random)"
	case engine.IntentStepForward:
		return "(Next)"
	case engine.IntentStepBackward:
		return "(Previous)"
	default:
		return ""
	}
}

// StatusLine prints coarse mode changes, one line per transition, standing
// in for the device's RGB indicator.
type StatusLine struct {
	w      io.Writer
	colors map[host.Mode]*color.Color
}

// NewStatusLine creates a status indicator writing to w.
func NewStatusLine(w io.Writer) *StatusLine {
	return &StatusLine{
		w: w,
		colors: map[host.Mode]*color.Color{
			host.ModeBooting:       color.New(color.FgBlue),
			host.ModeIdle:          color.New(color.FgGreen),
			host.ModeBusy:          color.New(color.FgYellow),
			host.ModeArmedForSleep: color.New(color.FgRed),
		},
	}
}

// SetMode prints the new mode.
func (s *StatusLine) SetMode(m host.Mode) {
	c, ok := s.colors[m]
	if !ok {
		fmt.Fprintf(s.w, "● %s\n", m)
		return
	}
	c.Fprintf(s.w, "● %s\n", m)
}

// Off marks the indicator extinguished (right before deep sleep).
func (s *StatusLine) Off() {
	fmt.Fprintln(s.w, "● off")
}
