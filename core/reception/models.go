// Package reception implements the visitor log kept at the front desk.
package reception

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shulehq/shule/core"
)

var (
	// errors
	ErrNotFound          = errors.New("visitor not found")
	ErrAlreadyCheckedOut = errors.New("visitor has already checked out")
)

type Visitor struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Purpose      string    `json:"purpose"`
	Host         string    `json:"host"` // staff member being visited
	CheckedInAt  time.Time `json:"checked_in_at"`  // UTC
	CheckedOutAt time.Time `json:"checked_out_at"` // UTC; zero while still on premises
}

func (v *Visitor) IsCheckedOut() bool {
	return !v.CheckedOutAt.IsZero()
}

// NewVisitor contains information needed to log a visitor in.
type NewVisitor struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Purpose string `json:"purpose" validate:"required"`
	Host    string `json:"host"`
}

func (nv *NewVisitor) Validate(validate *validator.Validate) error {
	nv.Name = core.CleanString(nv.Name)
	nv.Phone = core.CleanString(nv.Phone)
	nv.Purpose = core.CleanString(nv.Purpose)
	nv.Host = core.CleanString(nv.Host)
	return validate.Struct(nv)
}

type QueryFilter struct {
	Search        string    `query:"search"`
	OnPremises    *bool     `query:"on_premises"`
	CheckedInFrom time.Time `query:"checked_in_from"`
	CheckedInTo   time.Time `query:"checked_in_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.OnPremises == nil && qf.CheckedInFrom.IsZero() && qf.CheckedInTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
