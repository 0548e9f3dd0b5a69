package template

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/palette"
	"github.com/jmylchreest/tonal/pkg/scheme"
	"github.com/jmylchreest/tonal/pkg/theme"
)

// CustomColor is a resolved custom colour as seen by templates.
type CustomColor struct {
	Name  string
	Value argb.Color
	Light theme.ColorGroup
	Dark  theme.ColorGroup
}

// Data is the value templates are executed against.
type Data struct {
	Source       argb.Color
	Variant      string
	Light        *scheme.Scheme // nil when not rendered
	Dark         *scheme.Scheme // nil when not rendered
	Palettes     *palette.CorePalette
	CustomColors []CustomColor
}

// NewData flattens th for template use.
func NewData(th *theme.Theme) *Data {
	custom := make([]CustomColor, len(th.CustomColors))
	for i, cc := range th.CustomColors {
		custom[i] = CustomColor{
			Name:  cc.Color.Name,
			Value: cc.Value,
			Light: cc.Light,
			Dark:  cc.Dark,
		}
	}

	return &Data{
		Source:       th.Source,
		Variant:      string(th.Variant),
		Light:        th.Schemes.Light,
		Dark:         th.Schemes.Dark,
		Palettes:     th.Palettes,
		CustomColors: custom,
	}
}

// Parse compiles text as a template called name with Funcs available.
// Missing map keys are errors.
func Parse(name string, text []byte) (*template.Template, error) {
	tmpl, err := template.New(name).
		Funcs(Funcs()).
		Option("missingkey=error").
		Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// Render executes tmpl against th and writes the result to w. Nothing is
// written when execution fails.
func Render(w io.Writer, tmpl *template.Template, th *theme.Theme) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, NewData(th)); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", tmpl.Name(), err)
	}
	_, err := buf.WriteTo(w)
	return err
}
