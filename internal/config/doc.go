// Package config provides configuration management for tonal.
//
// Configuration is YAML, loaded in layers with later layers overriding
// earlier ones key by key:
//
//  1. Built-in defaults (Default)
//  2. User configuration ($XDG_CONFIG_HOME/tonal/config.yaml)
//  3. Project configuration (./.tonal.yaml)
//  4. An explicit file passed with --config
//
// Command-line flags are applied on top by the CLI. Lists such as
// theme.custom_colors are replaced, not merged.
//
// Example:
//
//	quantize:
//	  max_colors: 128
//	image:
//	  max_dimension: 512
//	  cache: true
//	theme:
//	  variant: tonal
//	  mode: both
//	  custom_colors:
//	    - name: brand
//	      value: "#c2185b"
//	      blend: true
//	output:
//	  format: yaml
//	  preview: auto
//	  template: kitty   # optional, see "tonal templates"
//
// Colour values must be quoted, since YAML treats an unquoted # as the
// start of a comment.
package config
