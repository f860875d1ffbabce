package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Team form messages shown to users.
const (
	MsgTeamNameRequired = "Please enter a team name"
	MsgTeamNameTooLong  = "Team name must be at most 128 characters"
	MsgTermsRequired    = "Please, accept terms and conditions"
	MsgInviteIDInvalid  = "Invalid invite"
)

// CreateTeamRequest is the body of POST /api/create-team.
type CreateTeamRequest struct {
	TeamName           string `json:"team_name" validate:"required,max=128"`
	TermsAndConditions bool   `json:"terms_and_conditions" validate:"eq=true"`
	ProductUpdates     bool   `json:"product_updates"`
	InviteID           string `json:"invite_id" validate:"omitempty,max=64,printascii"`
}

// FieldError is the first validation failure of a request.
type FieldError struct {
	Attribute string
	Message   string
}

func (e *FieldError) Error() string {
	return e.Attribute + ": " + e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalize trims user input before validation.
func (r *CreateTeamRequest) Normalize() {
	r.TeamName = strings.TrimSpace(r.TeamName)
	r.InviteID = strings.TrimSpace(r.InviteID)
}

// Validate normalizes the request and returns the first failing field in
// form order, or nil.
func (r *CreateTeamRequest) Validate() *FieldError {
	r.Normalize()

	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &FieldError{Attribute: "", Message: err.Error()}
	}

	first := errs[0]
	return &FieldError{Attribute: first.Field(), Message: teamFieldMessage(first)}
}

func teamFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "team_name":
		if fe.Tag() == "max" {
			return MsgTeamNameTooLong
		}
		return MsgTeamNameRequired
	case "terms_and_conditions":
		return MsgTermsRequired
	case "invite_id":
		return MsgInviteIDInvalid
	}
	return "Invalid value"
}
