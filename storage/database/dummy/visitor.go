package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/shulehq/shule/core"
	"github.com/shulehq/shule/core/reception"
)

type visitorRepository struct {
	db *visitorTable
}

var _ reception.Repository = (*visitorRepository)(nil) // interface compliance check

func NewVisitorRepository(db *DB) reception.Repository {
	return &visitorRepository{db: db.visitor}
}

func (repo *visitorRepository) query() []reception.Visitor {
	visitors := make([]reception.Visitor, 0, len(repo.db.table))
	for _, v := range repo.db.table {
		visitors = append(visitors, *v)
	}
	sort.Slice(visitors, func(i, j int) bool { return visitors[i].CheckedInAt.Before(visitors[j].CheckedInAt) })
	return visitors
}

func (repo *visitorRepository) CreateVisitor(_ context.Context, vis reception.Visitor, _ ...core.DBExecutor) (reception.Visitor, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	vis.ID = uuid.New().String()
	repo.db.table[vis.ID] = &vis
	return vis, nil
}

func (repo *visitorRepository) QueryVisitors(_ context.Context, filter *reception.QueryFilter, ordering []core.DBOrdering, _ ...core.DBExecutor) ([]reception.Visitor, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	visitors := repo.query()
	if filter == nil {
		return visitors, nil
	}

	if filter.Search != "" {
		var filtered []reception.Visitor
		search := strings.ToLower(filter.Search)
		for _, v := range visitors {
			if strings.Contains(strings.ToLower(v.Name), search) ||
				strings.Contains(strings.ToLower(v.Phone), search) ||
				strings.Contains(strings.ToLower(v.Host), search) {
				filtered = append(filtered, v)
			}
		}
		visitors = filtered
	}
	if visitors != nil && filter.OnPremises != nil {
		var filtered []reception.Visitor
		for _, v := range visitors {
			if v.IsCheckedOut() != *filter.OnPremises {
				filtered = append(filtered, v)
			}
		}
		visitors = filtered
	}
	if visitors != nil && !filter.CheckedInFrom.IsZero() {
		var filtered []reception.Visitor
		timeUTC := filter.CheckedInFrom.UTC()
		for _, v := range visitors {
			if v.CheckedInAt.Equal(timeUTC) || v.CheckedInAt.After(timeUTC) {
				filtered = append(filtered, v)
			}
		}
		visitors = filtered
	}
	if visitors != nil && !filter.CheckedInTo.IsZero() {
		var filtered []reception.Visitor
		timeUTC := filter.CheckedInTo.UTC()
		for _, v := range visitors {
			if v.CheckedInAt.Before(timeUTC) || v.CheckedInAt.Equal(timeUTC) {
				filtered = append(filtered, v)
			}
		}
		visitors = filtered
	}

	return visitors, nil
}

func (repo *visitorRepository) GetVisitorByID(_ context.Context, id string, _ ...core.DBExecutor) (reception.Visitor, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if vis, ok := repo.db.table[id]; ok {
		return *vis, nil
	}
	return reception.Visitor{}, reception.ErrNotFound
}

func (repo *visitorRepository) UpdateVisitor(_ context.Context, vis reception.Visitor, _ ...core.DBExecutor) (reception.Visitor, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[vis.ID]; !ok {
		return reception.Visitor{}, reception.ErrNotFound
	}
	repo.db.table[vis.ID] = &vis
	return vis, nil
}

func (repo *visitorRepository) DeleteVisitorsByID(_ context.Context, ids []string, _ ...core.DBExecutor) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			cnt++
		}
	}
	return cnt, nil
}
