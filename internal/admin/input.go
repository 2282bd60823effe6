package admin

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	ActionSuspend  = "suspend"
	ActionActivate = "activate"
	ActionDelete   = "delete"
)

type BulkBody struct {
	UserIDs []string `json:"userIds"`
	Action  string   `json:"action"`
}

func (b BulkBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.UserIDs, v.Required.Error("Select at least one user"), v.Length(0, 500), v.Each(v.Required)),
		v.Field(&b.Action, v.Required, v.In(ActionSuspend, ActionActivate, ActionDelete)),
	)
}
