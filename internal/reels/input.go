package reels

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	StyleProfessional = "professional"
	StyleCasual       = "casual"
	StyleEnergetic    = "energetic"
	StyleEducational  = "educational"
)

var styles = []any{StyleProfessional, StyleCasual, StyleEnergetic, StyleEducational}

type GenerateBody struct {
	ReelID  string           `json:"reelId"`
	Options *GenerateOptions `json:"options"`
}

type GenerateOptions struct {
	IncludeTrendingAudio bool   `json:"includeTrendingAudio"`
	Style                string `json:"style"`
	TargetAudience       string `json:"targetAudience"`
	Niche                string `json:"niche"`
}

// Defaults fills in the options a request left out.
func (b *GenerateBody) Defaults() {
	if b.Options == nil {
		b.Options = &GenerateOptions{}
	}
	if b.Options.Style == "" {
		b.Options.Style = StyleProfessional
	}
}

func (b GenerateBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.ReelID, v.Required.Error("Reel ID is required")),
		v.Field(&b.Options),
	)
}

func (o GenerateOptions) Validate() error {
	return v.ValidateStruct(&o,
		v.Field(&o.Style, v.In(styles...)),
	)
}

// EditBody changes the copy of a reel. Nil fields are left alone.
type EditBody struct {
	Title    *string `json:"title"`
	Hook     *string `json:"hook"`
	Script   *string `json:"script"`
	CTA      *string `json:"cta"`
	Hashtags *string `json:"hashtags"`
}

func (b EditBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.Title, v.NilOrNotEmpty.Error("Title cannot be empty"), v.Length(0, 200)),
		v.Field(&b.Hook, v.NilOrNotEmpty.Error("Hook cannot be empty"), v.Length(0, 500)),
		v.Field(&b.Script, v.NilOrNotEmpty.Error("Script cannot be empty")),
		v.Field(&b.CTA, v.Length(0, 500)),
		v.Field(&b.Hashtags, v.Length(0, 1000)),
	)
}

func (b EditBody) empty() bool {
	return b.Title == nil && b.Hook == nil && b.Script == nil && b.CTA == nil && b.Hashtags == nil
}
