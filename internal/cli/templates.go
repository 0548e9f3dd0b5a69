package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/template"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the templates in the template directory",
		Long: `List the templates available to "tonal theme --template" by name.

Templates are Go text/template files ending in .tmpl in the template
directory. They are executed against the theme with these fields:

  .Source .Variant .Light .Dark .Palettes .CustomColors

and these functions, among others:

  role .Light "primary"        colour of a scheme role
  tone .Palettes.Primary 40    colour of a palette tone
  custom . "brand"             a resolved custom colour
  hex, hexAlpha, hexNoHash, rgb, rgba, rgbDecimal, rgbSpaces
  withAlpha 0.8, withTone 90, harmonize, hue, chroma, lstar

Example template:
  background = {{ role .Dark "background" | hex }}
  foreground = {{ role .Dark "onBackground" | hex }}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := template.DefaultDir()
			if err != nil {
				return err
			}
			names, err := template.NewLoader(dir).List()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Template directory: %s\n", dir)
			if len(names) == 0 {
				fmt.Fprintln(w, "No templates found.")
				return nil
			}
			for _, name := range names {
				fmt.Fprintf(w, "  %s\n", name)
			}
			return nil
		},
	}
}
