package main

import (
	"context"
	"time"

	"github.com/shulehq/shule/core"
	"github.com/shulehq/shule/core/access"
	"github.com/shulehq/shule/core/user"
)

// addUser updates or creates a user.User; permissions are seeded from the
// matrix defaults of the assigned role.
func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	role := access.RoleEmployee
	if isAdmin {
		role = access.RoleAdmin
	}

	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{UsernameOrEmail: uname})
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		if usr, err = cli.usrRepo.GetUser(ctx, user.GetFilter{Email: email}); err != nil {
			if err != user.ErrNotFound {
				return err
			}
			return cli.createUser(ctx, uname, email, pwd, role)
		}
	}

	usr.Role = role
	usr.Permissions = access.Defaults(role)
	isActive := true
	usr.IsActive = &isActive
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}

func (cli *commandLine) createUser(ctx context.Context, uname, email, pwd string, role access.Role) error {
	now := time.Now().UTC()
	isActive := true
	usr := user.User{
		Name:        uname,
		Username:    uname,
		Email:       email,
		IsActive:    &isActive,
		Role:        role,
		Permissions: access.Defaults(role),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err := cli.usrRepo.CreateUser(ctx, usr)
	return err
}
