// Package scheme maps named colour roles to tones of a core palette for
// light and dark mode.
package scheme

import (
	"fmt"

	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/palette"
)

// Role names a colour slot in a scheme.
type Role string

// Scheme roles.
const (
	Primary              Role = "primary"
	OnPrimary            Role = "onPrimary"
	PrimaryContainer     Role = "primaryContainer"
	OnPrimaryContainer   Role = "onPrimaryContainer"
	Secondary            Role = "secondary"
	OnSecondary          Role = "onSecondary"
	SecondaryContainer   Role = "secondaryContainer"
	OnSecondaryContainer Role = "onSecondaryContainer"
	Tertiary             Role = "tertiary"
	OnTertiary           Role = "onTertiary"
	TertiaryContainer    Role = "tertiaryContainer"
	OnTertiaryContainer  Role = "onTertiaryContainer"
	Error                Role = "error"
	OnError              Role = "onError"
	ErrorContainer       Role = "errorContainer"
	OnErrorContainer     Role = "onErrorContainer"
	Background           Role = "background"
	OnBackground         Role = "onBackground"
	Surface              Role = "surface"
	OnSurface            Role = "onSurface"
	SurfaceVariant       Role = "surfaceVariant"
	OnSurfaceVariant     Role = "onSurfaceVariant"
	Outline              Role = "outline"
	OutlineVariant       Role = "outlineVariant"
	Shadow               Role = "shadow"
	Scrim                Role = "scrim"
	InverseSurface       Role = "inverseSurface"
	InverseOnSurface     Role = "inverseOnSurface"
	InversePrimary       Role = "inversePrimary"
)

// Source identifies which core palette a role draws from.
type Source string

// Core palette sources.
const (
	SourcePrimary        Source = "primary"
	SourceSecondary      Source = "secondary"
	SourceTertiary       Source = "tertiary"
	SourceNeutral        Source = "neutral"
	SourceNeutralVariant Source = "neutralVariant"
	SourceError          Source = "error"
)

// RoleSpec is one row of the role table.
type RoleSpec struct {
	Role      Role
	Source    Source
	LightTone float64
	DarkTone  float64
}

// roleTable is the fixed role to tone assignment, in output order.
var roleTable = []RoleSpec{
	{Primary, SourcePrimary, 40, 80},
	{OnPrimary, SourcePrimary, 100, 20},
	{PrimaryContainer, SourcePrimary, 90, 30},
	{OnPrimaryContainer, SourcePrimary, 10, 90},
	{Secondary, SourceSecondary, 40, 80},
	{OnSecondary, SourceSecondary, 100, 20},
	{SecondaryContainer, SourceSecondary, 90, 30},
	{OnSecondaryContainer, SourceSecondary, 10, 90},
	{Tertiary, SourceTertiary, 40, 80},
	{OnTertiary, SourceTertiary, 100, 20},
	{TertiaryContainer, SourceTertiary, 90, 30},
	{OnTertiaryContainer, SourceTertiary, 10, 90},
	{Error, SourceError, 40, 80},
	{OnError, SourceError, 100, 20},
	{ErrorContainer, SourceError, 90, 30},
	{OnErrorContainer, SourceError, 10, 80},
	{Background, SourceNeutral, 99, 10},
	{OnBackground, SourceNeutral, 10, 90},
	{Surface, SourceNeutral, 99, 10},
	{OnSurface, SourceNeutral, 10, 90},
	{SurfaceVariant, SourceNeutralVariant, 90, 30},
	{OnSurfaceVariant, SourceNeutralVariant, 30, 80},
	{Outline, SourceNeutralVariant, 50, 60},
	{OutlineVariant, SourceNeutralVariant, 80, 30},
	{Shadow, SourceNeutral, 0, 0},
	{Scrim, SourceNeutral, 0, 0},
	{InverseSurface, SourceNeutral, 20, 90},
	{InverseOnSurface, SourceNeutral, 95, 20},
	{InversePrimary, SourcePrimary, 80, 40},
}

// Roles returns a copy of the role table in output order.
func Roles() []RoleSpec {
	out := make([]RoleSpec, len(roleTable))
	copy(out, roleTable)
	return out
}

// Scheme holds the colour of every role for one mode.
type Scheme struct {
	Primary              argb.Color `json:"primary" yaml:"primary"`
	OnPrimary            argb.Color `json:"onPrimary" yaml:"onPrimary"`
	PrimaryContainer     argb.Color `json:"primaryContainer" yaml:"primaryContainer"`
	OnPrimaryContainer   argb.Color `json:"onPrimaryContainer" yaml:"onPrimaryContainer"`
	Secondary            argb.Color `json:"secondary" yaml:"secondary"`
	OnSecondary          argb.Color `json:"onSecondary" yaml:"onSecondary"`
	SecondaryContainer   argb.Color `json:"secondaryContainer" yaml:"secondaryContainer"`
	OnSecondaryContainer argb.Color `json:"onSecondaryContainer" yaml:"onSecondaryContainer"`
	Tertiary             argb.Color `json:"tertiary" yaml:"tertiary"`
	OnTertiary           argb.Color `json:"onTertiary" yaml:"onTertiary"`
	TertiaryContainer    argb.Color `json:"tertiaryContainer" yaml:"tertiaryContainer"`
	OnTertiaryContainer  argb.Color `json:"onTertiaryContainer" yaml:"onTertiaryContainer"`
	Error                argb.Color `json:"error" yaml:"error"`
	OnError              argb.Color `json:"onError" yaml:"onError"`
	ErrorContainer       argb.Color `json:"errorContainer" yaml:"errorContainer"`
	OnErrorContainer     argb.Color `json:"onErrorContainer" yaml:"onErrorContainer"`
	Background           argb.Color `json:"background" yaml:"background"`
	OnBackground         argb.Color `json:"onBackground" yaml:"onBackground"`
	Surface              argb.Color `json:"surface" yaml:"surface"`
	OnSurface            argb.Color `json:"onSurface" yaml:"onSurface"`
	SurfaceVariant       argb.Color `json:"surfaceVariant" yaml:"surfaceVariant"`
	OnSurfaceVariant     argb.Color `json:"onSurfaceVariant" yaml:"onSurfaceVariant"`
	Outline              argb.Color `json:"outline" yaml:"outline"`
	OutlineVariant       argb.Color `json:"outlineVariant" yaml:"outlineVariant"`
	Shadow               argb.Color `json:"shadow" yaml:"shadow"`
	Scrim                argb.Color `json:"scrim" yaml:"scrim"`
	InverseSurface       argb.Color `json:"inverseSurface" yaml:"inverseSurface"`
	InverseOnSurface     argb.Color `json:"inverseOnSurface" yaml:"inverseOnSurface"`
	InversePrimary       argb.Color `json:"inversePrimary" yaml:"inversePrimary"`
}

// Light returns the light-mode scheme of core.
func Light(core *palette.CorePalette) *Scheme {
	return build(core, false)
}

// Dark returns the dark-mode scheme of core.
func Dark(core *palette.CorePalette) *Scheme {
	return build(core, true)
}

func build(core *palette.CorePalette, dark bool) *Scheme {
	s := &Scheme{}
	for _, spec := range roleTable {
		tone := spec.LightTone
		if dark {
			tone = spec.DarkTone
		}
		*s.field(spec.Role) = paletteFor(core, spec.Source).Tone(tone)
	}
	return s
}

func paletteFor(core *palette.CorePalette, source Source) palette.TonalPalette {
	switch source {
	case SourcePrimary:
		return core.Primary
	case SourceSecondary:
		return core.Secondary
	case SourceTertiary:
		return core.Tertiary
	case SourceNeutral:
		return core.Neutral
	case SourceNeutralVariant:
		return core.NeutralVariant
	default:
		return core.Error
	}
}

// field returns a pointer to the struct field backing role, or nil if the
// role is unknown.
func (s *Scheme) field(role Role) *argb.Color {
	switch role {
	case Primary:
		return &s.Primary
	case OnPrimary:
		return &s.OnPrimary
	case PrimaryContainer:
		return &s.PrimaryContainer
	case OnPrimaryContainer:
		return &s.OnPrimaryContainer
	case Secondary:
		return &s.Secondary
	case OnSecondary:
		return &s.OnSecondary
	case SecondaryContainer:
		return &s.SecondaryContainer
	case OnSecondaryContainer:
		return &s.OnSecondaryContainer
	case Tertiary:
		return &s.Tertiary
	case OnTertiary:
		return &s.OnTertiary
	case TertiaryContainer:
		return &s.TertiaryContainer
	case OnTertiaryContainer:
		return &s.OnTertiaryContainer
	case Error:
		return &s.Error
	case OnError:
		return &s.OnError
	case ErrorContainer:
		return &s.ErrorContainer
	case OnErrorContainer:
		return &s.OnErrorContainer
	case Background:
		return &s.Background
	case OnBackground:
		return &s.OnBackground
	case Surface:
		return &s.Surface
	case OnSurface:
		return &s.OnSurface
	case SurfaceVariant:
		return &s.SurfaceVariant
	case OnSurfaceVariant:
		return &s.OnSurfaceVariant
	case Outline:
		return &s.Outline
	case OutlineVariant:
		return &s.OutlineVariant
	case Shadow:
		return &s.Shadow
	case Scrim:
		return &s.Scrim
	case InverseSurface:
		return &s.InverseSurface
	case InverseOnSurface:
		return &s.InverseOnSurface
	case InversePrimary:
		return &s.InversePrimary
	default:
		return nil
	}
}

// Get returns the colour of role.
func (s *Scheme) Get(role Role) (argb.Color, error) {
	f := s.field(role)
	if f == nil {
		return 0, fmt.Errorf("unknown role: %q", role)
	}
	return *f, nil
}

// RoleColor is a role and its colour.
type RoleColor struct {
	Role  Role       `json:"role" yaml:"role"`
	Color argb.Color `json:"color" yaml:"color"`
}

// All returns every role and its colour in table order.
func (s *Scheme) All() []RoleColor {
	out := make([]RoleColor, len(roleTable))
	for i, spec := range roleTable {
		out[i] = RoleColor{Role: spec.Role, Color: *s.field(spec.Role)}
	}
	return out
}
