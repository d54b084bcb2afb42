// Package dummydb provides in-memory repositories used as test doubles.
package dummydb

import (
	"sync"

	"github.com/shulehq/shule/core/reception"
	"github.com/shulehq/shule/core/user"
)

type (
	DB struct {
		user    *userTable
		visitor *visitorTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	visitorTable struct {
		sync.RWMutex
		table map[string]*reception.Visitor
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:    &userTable{table: make(map[string]*user.User)},
		visitor: &visitorTable{table: make(map[string]*reception.Visitor)},
	}
	return db, nil
}
