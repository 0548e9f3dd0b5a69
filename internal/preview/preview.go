// Package preview renders colours, palettes and themes as terminal text,
// optionally with truecolour swatches.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/cam16"
	"github.com/jmylchreest/tonal/pkg/hct"
	"github.com/jmylchreest/tonal/pkg/palette"
	"github.com/jmylchreest/tonal/pkg/quantize"
	"github.com/jmylchreest/tonal/pkg/scheme"
	"github.com/jmylchreest/tonal/pkg/score"
	"github.com/jmylchreest/tonal/pkg/theme"
)

const defaultSwatchWidth = 8

// contrastPairs are the foreground/background role pairs checked in theme
// previews.
var contrastPairs = [][2]scheme.Role{
	{scheme.OnPrimary, scheme.Primary},
	{scheme.OnPrimaryContainer, scheme.PrimaryContainer},
	{scheme.OnSecondary, scheme.Secondary},
	{scheme.OnTertiary, scheme.Tertiary},
	{scheme.OnError, scheme.Error},
	{scheme.OnBackground, scheme.Background},
	{scheme.OnSurface, scheme.Surface},
	{scheme.OnSurfaceVariant, scheme.SurfaceVariant},
}

// Enabled resolves a preview mode (auto, always, never) for w. Auto enables
// swatches only when w is a terminal.
func Enabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "auto":
		f, ok := w.(interface{ Fd() uintptr })
		return ok && term.IsTerminal(int(f.Fd()))
	default:
		return false
	}
}

// Renderer formats engine results as text.
type Renderer struct {
	lg          *lipgloss.Renderer
	swatches    bool
	swatchWidth int
}

// NewRenderer returns a renderer writing for w. With swatches set, every
// colour row carries a truecolour block regardless of what w supports.
func NewRenderer(w io.Writer, swatches bool) *Renderer {
	lg := lipgloss.NewRenderer(w)
	if swatches {
		lg.SetColorProfile(termenv.TrueColor)
	}
	return &Renderer{
		lg:          lg,
		swatches:    swatches,
		swatchWidth: defaultSwatchWidth,
	}
}

// Swatch renders a block of c with label centred in a readable text
// colour. It returns "" when swatches are disabled.
func (r *Renderer) Swatch(c argb.Color, label string) string {
	if !r.swatches {
		return ""
	}
	return r.lg.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(textOn(c).Hex())).
		Width(max(r.swatchWidth, lipgloss.Width(label))).
		Align(lipgloss.Center).
		Render(label)
}

func (r *Renderer) table(headers ...string) *Table {
	if r.swatches {
		headers = append([]string{""}, headers...)
	}
	return NewTable(headers...)
}

func (r *Renderer) row(t *Table, c argb.Color, cells ...string) {
	if r.swatches {
		cells = append([]string{r.Swatch(c, "")}, cells...)
	}
	t.AddRow(cells...)
}

func (r *Renderer) title(s string) string {
	return r.lg.NewStyle().Bold(true).Render(s)
}

func hctCells(c argb.Color) []string {
	h := hct.FromARGB(c)
	return []string{
		fmt.Sprintf("%.1f", h.Hue()),
		fmt.Sprintf("%.1f", h.Chroma()),
		fmt.Sprintf("%.1f", h.Tone()),
	}
}

// Colors renders quantizer output with populations and shares.
func (r *Renderer) Colors(result quantize.Result) string {
	total := result.Total()
	t := r.table("COLOUR", "POPULATION", "SHARE", "HUE", "CHROMA", "TONE")
	for _, qc := range result {
		share := 0.0
		if total > 0 {
			share = float64(qc.Population) / float64(total) * 100
		}
		cells := append([]string{
			qc.Color.Hex(),
			fmt.Sprintf("%d", qc.Population),
			fmt.Sprintf("%.1f%%", share),
		}, hctCells(qc.Color)...)
		r.row(t, qc.Color, cells...)
	}
	return t.Render()
}

// Candidates renders ranked seed candidates, best first.
func (r *Renderer) Candidates(candidates []score.Candidate) string {
	t := r.table("RANK", "COLOUR", "SCORE", "HUE", "CHROMA", "TONE")
	for i, c := range candidates {
		cells := append([]string{
			fmt.Sprintf("%d", i+1),
			c.Color.Hex(),
			fmt.Sprintf("%.2f", c.Score),
		}, hctCells(c.Color)...)
		r.row(t, c.Color, cells...)
	}
	return t.Render()
}

// Palette renders a tonal palette at every canonical tone. With swatches
// enabled a one-line strip precedes the table.
func (r *Renderer) Palette(p palette.TonalPalette) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", r.title(fmt.Sprintf("Tonal palette (hue %.2f, chroma %.2f)", p.Hue(), p.Chroma())))

	if r.swatches {
		for _, tc := range p.Tones() {
			sb.WriteString(r.lg.NewStyle().Background(lipgloss.Color(tc.Color.Hex())).Render("  "))
		}
		sb.WriteString("\n")
	}

	t := r.table("TONE", "COLOUR")
	for _, tc := range p.Tones() {
		r.row(t, tc.Color, fmt.Sprintf("%g", tc.Tone), tc.Color.Hex())
	}
	sb.WriteString(t.Render())
	return sb.String()
}

// Scheme renders every role of s with its colour and tone.
func (r *Renderer) Scheme(name string, s *scheme.Scheme) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", r.title(name))

	t := r.table("ROLE", "COLOUR", "TONE")
	for _, rc := range s.All() {
		r.row(t, rc.Color, string(rc.Role), rc.Color.Hex(), fmt.Sprintf("%.1f", rc.Color.Lstar()))
	}
	sb.WriteString(t.Render())
	return sb.String()
}

// Contrast renders the WCAG contrast of the main foreground/background
// role pairs of s.
func (r *Renderer) Contrast(s *scheme.Scheme) string {
	t := NewTable("FOREGROUND", "BACKGROUND", "RATIO", "WCAG")
	for _, pair := range contrastPairs {
		fg, _ := s.Get(pair[0])
		bg, _ := s.Get(pair[1])
		label := string(pair[0])
		if r.swatches {
			label = r.lg.NewStyle().
				Background(lipgloss.Color(bg.Hex())).
				Foreground(lipgloss.Color(fg.Hex())).
				Render(" " + label + " ")
		}
		ratio := ContrastRatio(fg, bg)
		t.AddRow(label, string(pair[1]), fmt.Sprintf("%.2f:1", ratio), Rating(ratio))
	}
	return t.Render()
}

// Theme renders the source, the requested schemes with contrast checks,
// and any custom colours.
func (r *Renderer) Theme(th *theme.Theme, light, dark bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s %s (variant %s)\n\n",
		r.title("Source"), r.Swatch(th.Source, ""), th.Source.Hex(), th.Variant)

	if light {
		sb.WriteString(r.Scheme("Light scheme", th.Schemes.Light))
		sb.WriteString("\n")
		sb.WriteString(r.Contrast(th.Schemes.Light))
		sb.WriteString("\n")
	}
	if dark {
		sb.WriteString(r.Scheme("Dark scheme", th.Schemes.Dark))
		sb.WriteString("\n")
		sb.WriteString(r.Contrast(th.Schemes.Dark))
		sb.WriteString("\n")
	}

	if len(th.CustomColors) > 0 {
		fmt.Fprintf(&sb, "%s\n", r.title("Custom colours"))
		t := r.table("NAME", "VALUE", "MODE", "COLOR", "ON", "CONTAINER", "ON CONTAINER")
		for _, cc := range th.CustomColors {
			if light {
				r.row(t, cc.Light.Color, cc.Color.Name, cc.Value.Hex(), "light",
					cc.Light.Color.Hex(), cc.Light.OnColor.Hex(), cc.Light.ColorContainer.Hex(), cc.Light.OnColorContainer.Hex())
			}
			if dark {
				r.row(t, cc.Dark.Color, cc.Color.Name, cc.Value.Hex(), "dark",
					cc.Dark.Color.Hex(), cc.Dark.OnColor.Hex(), cc.Dark.ColorContainer.Hex(), cc.Dark.OnColorContainer.Hex())
			}
		}
		sb.WriteString(t.Render())
	}

	return sb.String()
}

// Inspect renders a colour in every supported colour space.
func (r *Renderer) Inspect(c argb.Color) string {
	h := hct.FromARGB(c)
	cam := cam16.FromARGB(c)
	xyz := c.XYZ()
	lab := c.Lab()

	t := NewTable("SPACE", "VALUE")
	t.AddRow("hex", c.Hex())
	t.AddRow("rgb", fmt.Sprintf("%d, %d, %d", c.Red(), c.Green(), c.Blue()))
	t.AddRow("hct", fmt.Sprintf("h %.2f  c %.2f  t %.2f", h.Hue(), h.Chroma(), h.Tone()))
	t.AddRow("cam16", fmt.Sprintf("J %.2f  C %.2f  h %.2f  Q %.2f  M %.2f  s %.2f", cam.J, cam.Chroma, cam.Hue, cam.Q, cam.M, cam.S))
	t.AddRow("cam16-ucs", fmt.Sprintf("J* %.2f  a* %.2f  b* %.2f", cam.Jstar, cam.Astar, cam.Bstar))
	t.AddRow("xyz", fmt.Sprintf("%.2f, %.2f, %.2f", xyz.X, xyz.Y, xyz.Z))
	t.AddRow("lab", fmt.Sprintf("%.2f, %.2f, %.2f", lab.L, lab.A, lab.B))
	t.AddRow("max chroma", fmt.Sprintf("%.2f", h.MaximumChroma()))
	t.AddRow("contrast", fmt.Sprintf("%.2f:1 on white, %.2f:1 on black",
		ContrastRatio(c, 0xffffffff), ContrastRatio(c, 0xff000000)))

	var sb strings.Builder
	if r.swatches {
		sb.WriteString(r.Swatch(c, c.Hex()))
		sb.WriteString("\n")
	}
	sb.WriteString(t.Render())
	return sb.String()
}

// NamedColor is a labelled colour for Named.
type NamedColor struct {
	Name  string
	Color argb.Color
}

// Named renders a list of labelled colours.
func (r *Renderer) Named(colors []NamedColor) string {
	t := r.table("NAME", "COLOUR", "HUE", "CHROMA", "TONE")
	for _, nc := range colors {
		r.row(t, nc.Color, append([]string{nc.Name, nc.Color.Hex()}, hctCells(nc.Color)...)...)
	}
	return t.Render()
}
