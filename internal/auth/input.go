package auth

import (
	"strings"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/creatorstation/reelstudio/internal/models"
)

const minPasswordLength = 8

type SignupBody struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Plan     models.Plan `json:"plan"`
}

func (b *SignupBody) Defaults() {
	b.Email = normalizeEmail(b.Email)
	if b.Plan == "" {
		b.Plan = models.PlanStarter
	}
}

func (b SignupBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.Name, v.Required.Error("Name is required"), v.Length(0, 100)),
		v.Field(&b.Email, v.Required.Error("Email is required"), is.EmailFormat),
		v.Field(&b.Password, v.Required.Error("Password is required"),
			v.Length(minPasswordLength, 72).Error("Password must be between 8 and 72 characters")),
		v.Field(&b.Plan, v.In(models.Plans...)),
	)
}

type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (b LoginBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.Email, v.Required.Error("Email is required")),
		v.Field(&b.Password, v.Required.Error("Password is required")),
	)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
