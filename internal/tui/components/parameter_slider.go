package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/compme/internal/tui/tuistyles"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// ParameterSlider displays an adjustable parameter with a visual bar. A slider
// built with NewChoiceSlider steps through a fixed list of labels instead of
// a numeric range; Value is then the index of the current choice.
type ParameterSlider struct {
	Key         string // identifies the field the slider edits
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Unit        string // e.g., "%", " yrs"
	Prefix      string // e.g., "$"
	Format      string // e.g., "%.0f"
	Choices     []string
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a numeric slider
func NewParameterSlider(key, label string, value, min, max, step float64) *ParameterSlider {
	p := &ParameterSlider{
		Key:    key,
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.0f",
		Width:  30,
	}
	p.SetValue(value)
	return p
}

// NewChoiceSlider creates a slider over labels. An unknown selected label
// starts at the first choice.
func NewChoiceSlider(key, label string, choices []string, selected string) *ParameterSlider {
	p := &ParameterSlider{
		Key:     key,
		Label:   label,
		Max:     float64(max(len(choices)-1, 0)),
		Step:    1,
		Choices: choices,
		Width:   30,
	}
	for i, c := range choices {
		if strings.EqualFold(c, selected) {
			p.Value = float64(i)
			break
		}
	}
	return p
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithPrefix sets the value prefix
func (p *ParameterSlider) WithPrefix(prefix string) *ParameterSlider {
	p.Prefix = prefix
	return p
}

// WithFormat sets the value format string
func (p *ParameterSlider) WithFormat(format string) *ParameterSlider {
	p.Format = format
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// Increment increases the value by step, stopping at Max
func (p *ParameterSlider) Increment() {
	p.SetValue(p.Value + p.Step)
}

// Decrement decreases the value by step, stopping at Min
func (p *ParameterSlider) Decrement() {
	p.SetValue(p.Value - p.Step)
}

// SetValue sets the value directly, clamping to min/max
func (p *ParameterSlider) SetValue(value float64) {
	p.Value = math.Max(p.Min, math.Min(p.Max, value))
}

// Choice returns the selected label, or "" for numeric sliders
func (p *ParameterSlider) Choice() string {
	if len(p.Choices) == 0 {
		return ""
	}
	i := int(math.Round(p.Value))
	if i < 0 || i >= len(p.Choices) {
		return ""
	}
	return p.Choices[i]
}

// Percentage returns the value as a fraction of the range
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// Display formats the current value
func (p *ParameterSlider) Display() string {
	if len(p.Choices) > 0 {
		return p.Choice()
	}
	return p.formatNumber(p.Value)
}

func (p *ParameterSlider) formatNumber(v float64) string {
	return p.Prefix + numberPrinter.Sprintf(p.Format, v) + p.Unit
}

// Render returns the styled parameter slider
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	var content strings.Builder
	content.WriteString(labelStyle.Render(p.Label) + "  " + valueStyle.Render(p.Display()) + "\n")
	content.WriteString(p.renderBar(p.Width))

	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	if len(p.Choices) == 0 {
		content.WriteString(" " + muted.Render(p.formatNumber(p.Min)+" ─ "+p.formatNumber(p.Max)))
	}
	if p.Description != "" {
		content.WriteString("\n" + tuistyles.HintStyle.Render(p.Description))
	}
	return content.String()
}

// RenderCompact returns a compact single-line version
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	prefix := "  "
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		prefix = "▸ "
	}
	return fmt.Sprintf("%s%s %s %s",
		prefix,
		labelStyle.Width(20).Render(p.Label),
		p.renderBar(12),
		valueStyle.Render(p.Display()))
}

// renderBar draws the track with the thumb at the current position
func (p *ParameterSlider) renderBar(width int) string {
	if width < 2 {
		width = 2
	}
	pos := int(math.Round(float64(width-1) * p.Percentage()))

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if pos > 0 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", pos)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if rest := width - pos - 1; rest > 0 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	bar.WriteString("]")
	return bar.String()
}
