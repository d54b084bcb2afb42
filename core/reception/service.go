package reception

import (
	"context"
	"time"

	"github.com/shulehq/shule/core"
)

type (
	Repository interface {
		CreateVisitor(ctx context.Context, vis Visitor, exec ...core.DBExecutor) (Visitor, error)
		// QueryVisitors applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Name, Phone or Host.
		QueryVisitors(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Visitor, error)
		GetVisitorByID(ctx context.Context, id string, exec ...core.DBExecutor) (Visitor, error)
		UpdateVisitor(ctx context.Context, vis Visitor, exec ...core.DBExecutor) (Visitor, error)
		DeleteVisitorsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service interface {
		CheckIn(ctx context.Context, nv NewVisitor) (Visitor, error)
		Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Visitor, error)
		GetByID(ctx context.Context, id string) (Visitor, error)
		CheckOut(ctx context.Context, id string) (Visitor, error)
		Delete(ctx context.Context, ids ...string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) CheckIn(ctx context.Context, nv NewVisitor) (Visitor, error) {
	vis := Visitor{
		Name:        nv.Name,
		Phone:       nv.Phone,
		Purpose:     nv.Purpose,
		Host:        nv.Host,
		CheckedInAt: time.Now().UTC(),
	}
	return svc.repo.CreateVisitor(ctx, vis)
}

func (svc *service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Visitor, error) {
	return svc.repo.QueryVisitors(ctx, filter, ordering)
}

func (svc *service) GetByID(ctx context.Context, id string) (Visitor, error) {
	return svc.repo.GetVisitorByID(ctx, id)
}

func (svc *service) CheckOut(ctx context.Context, id string) (Visitor, error) {
	vis, err := svc.repo.GetVisitorByID(ctx, id)
	if err != nil {
		return Visitor{}, err
	}
	if vis.IsCheckedOut() {
		return Visitor{}, core.NewValidationError(ErrAlreadyCheckedOut)
	}
	vis.CheckedOutAt = time.Now().UTC()
	return svc.repo.UpdateVisitor(ctx, vis)
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	_, err := svc.repo.DeleteVisitorsByID(ctx, ids)
	return err
}
