package user

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/shulehq/shule/core"
	"github.com/shulehq/shule/core/access"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrUsernameExists = errors.New("a user with this username already exists")
	ErrLastAdmin      = errors.New("cannot demote the only administrator")
)

type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	IsActive     *bool       `json:"is_active"`
	Role         access.Role `json:"role"`
	Permissions  access.Set  `json:"permissions"`
	PasswordHash []byte      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"` // UTC
	UpdatedAt    time.Time   `json:"updated_at"` // UTC
	LastLogin    time.Time   `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool    { return u.Role == access.RoleAdmin }
func (u *User) IsEmployee() bool { return u.Role == access.RoleEmployee }
func (u *User) IsStudent() bool  { return u.Role == access.RoleStudent }

// EffectivePermissions resolves the user's effective permission set:
// the stored override if non-empty, else the matrix defaults for their role.
func (u *User) EffectivePermissions() access.Set {
	return access.Resolve(u.Role, u.Permissions)
}

// Can reports whether `action` on `app` is allowed for this user.
// This is the authoritative server-side gate; client-side checks are UX only.
func (u *User) Can(app access.App, action access.Action) bool {
	return u.EffectivePermissions().Allows(app, action)
}

// CanChangeRole applies the role-escalation safety rule: an admin may not
// demote themselves when they are the only administrator left.
// adminCount must come from a fresh read taken right before the write.
func CanChangeRole(acting User, targetID string, newRole access.Role, adminCount int) error {
	if targetID == acting.ID && newRole != access.RoleAdmin && adminCount <= 1 {
		return ErrLastAdmin
	}
	return nil
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name            string      `json:"name" validate:"required"`
	Username        string      `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email           string      `json:"email" validate:"omitempty,email"`
	Password        string      `json:"password" validate:"required"`
	PasswordConfirm string      `json:"password_confirm" validate:"required,eqfield=Password"`
	Role            access.Role `json:"role" validate:"required,role"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username, nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Role and permission changes go through their dedicated operations.
type UpdateUser struct {
	Name            string `json:"name"`
	Username        string `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email           string `json:"email" validate:"omitempty,email"`
	IsActive        *bool  `json:"is_active"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate, svc Service) error {
	if name := core.CleanString(uu.Name); name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	if uname := core.CleanString(uu.Username, true /* lower */); uname != "" {
		uu.Username = uname
	} else {
		uu.Username = origUsr.Username
	}

	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if err := validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(uu.Username, uu.Email, origUsr)
}

// ChangeUserRole reassigns a user's role. On success the stored permissions
// are re-seeded from the matrix defaults of the new role.
type ChangeUserRole struct {
	Role access.Role `json:"role" validate:"required,role"`
}

func (cr *ChangeUserRole) Validate(validate *validator.Validate) error {
	cr.Role = access.Role(core.CleanString(string(cr.Role)))
	return validate.Struct(cr)
}

// ChangeUserPermissions replaces a user's stored permission override wholesale.
// An empty map is accepted; resolution then falls back to the role defaults.
type ChangeUserPermissions struct {
	Permissions access.Set `json:"permissions"`
}

func (cp *ChangeUserPermissions) Validate() error {
	if invalid := cp.Permissions.Check(); len(invalid) > 0 {
		flds := make([]core.FieldError, 0, len(invalid))
		for _, app := range invalid {
			flds = append(flds, core.FieldError{Field: string(app), Error: "unknown app"})
		}
		return core.NewValidationError(errors.New("unknown apps in permission set"), flds...)
	}
	return nil
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate(validate *validator.Validate) error {
	return validate.Struct(rp)
}

type QueryFilter struct {
	Search      string        `query:"search"`
	Roles       []access.Role `query:"role"`
	IsActive    *bool         `query:"is_active"`
	CreatedFrom time.Time     `query:"created_from"`
	CreatedTo   time.Time     `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil && qf.IsActive == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// GetFilter selects a single user; the first set field wins.
type GetFilter struct {
	ID              string
	Username        string
	Email           string
	UsernameOrEmail string
}
