package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/shulehq/shule/core"
	"github.com/shulehq/shule/core/reception"
)

type visitorRow struct {
	ID           string      `db:"id"`
	Name         null.String `db:"name"`
	Phone        null.String `db:"phone"`
	Purpose      null.String `db:"purpose"`
	Host         null.String `db:"host"`
	CheckedInAt  null.Time   `db:"checked_in_at"`
	CheckedOutAt null.Time   `db:"checked_out_at"`
}

type visitorRepository struct {
	db *sqlx.DB
}

var _ reception.Repository = (*visitorRepository)(nil) // interface compliance check

func NewVisitorRepository(db *sql.DB) *visitorRepository {
	return &visitorRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo visitorRepository) ext(exec []core.DBExecutor) sqlx.ExtContext {
	if len(exec) > 0 {
		if e, ok := exec[0].(sqlx.ExtContext); ok {
			return e
		}
	}
	return repo.db
}

func (repo visitorRepository) row(vis reception.Visitor) visitorRow {
	return visitorRow{
		ID:           vis.ID,
		Name:         null.NewString(vis.Name, vis.Name != ""),
		Phone:        null.NewString(vis.Phone, vis.Phone != ""),
		Purpose:      null.NewString(vis.Purpose, vis.Purpose != ""),
		Host:         null.NewString(vis.Host, vis.Host != ""),
		CheckedInAt:  null.NewTime(vis.CheckedInAt.UTC(), !vis.CheckedInAt.IsZero()),
		CheckedOutAt: null.NewTime(vis.CheckedOutAt.UTC(), !vis.CheckedOutAt.IsZero()),
	}
}

func (repo visitorRepository) unrow(row visitorRow) reception.Visitor {
	return reception.Visitor{
		ID:           row.ID,
		Name:         row.Name.String,
		Phone:        row.Phone.String,
		Purpose:      row.Purpose.String,
		Host:         row.Host.String,
		CheckedInAt:  row.CheckedInAt.Time,
		CheckedOutAt: row.CheckedOutAt.Time,
	}
}

func (repo visitorRepository) CreateVisitor(ctx context.Context, vis reception.Visitor, exec ...core.DBExecutor) (reception.Visitor, error) {
	vis.ID = uuid.New().String()
	row := repo.row(vis)

	const q = `
		INSERT INTO visitor (id, name, phone, purpose, host, checked_in_at, checked_out_at)
		VALUES (:id, :name, :phone, :purpose, :host, :checked_in_at, :checked_out_at)`
	if _, err := sqlx.NamedExecContext(ctx, repo.ext(exec), q, row); err != nil {
		return reception.Visitor{}, errors.Wrap(err, "inserting visitor")
	}
	return vis, nil
}

// visitorSortColumns are the columns QueryVisitors accepts in an ordering.
var visitorSortColumns = map[string]bool{
	"name":           true,
	"phone":          true,
	"purpose":        true,
	"host":           true,
	"checked_in_at":  true,
	"checked_out_at": true,
}

func (repo visitorRepository) QueryVisitors(ctx context.Context, filter *reception.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]reception.Visitor, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter != nil {
		if filter.Search != "" {
			p := arg("%" + filter.Search + "%")
			conds = append(conds, fmt.Sprintf("(name ILIKE %[1]s OR phone ILIKE %[1]s OR host ILIKE %[1]s)", p))
		}
		if filter.OnPremises != nil {
			if *filter.OnPremises {
				conds = append(conds, "checked_out_at IS NULL")
			} else {
				conds = append(conds, "checked_out_at IS NOT NULL")
			}
		}
		if !filter.CheckedInFrom.IsZero() {
			conds = append(conds, fmt.Sprintf("checked_in_at >= %s", arg(filter.CheckedInFrom.UTC())))
		}
		if !filter.CheckedInTo.IsZero() {
			conds = append(conds, fmt.Sprintf("checked_in_at <= %s", arg(filter.CheckedInTo.UTC())))
		}
	}

	q := `SELECT * FROM visitor`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY " + orderBy(ordering, visitorSortColumns, "checked_in_at ASC")

	var rows []visitorRow
	if err := sqlx.SelectContext(ctx, repo.ext(exec), &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying visitors")
	}

	visitors := make([]reception.Visitor, 0, len(rows))
	for _, row := range rows {
		visitors = append(visitors, repo.unrow(row))
	}
	return visitors, nil
}

func (repo visitorRepository) GetVisitorByID(ctx context.Context, id string, exec ...core.DBExecutor) (reception.Visitor, error) {
	if _, err := uuid.Parse(id); err != nil {
		return reception.Visitor{}, reception.ErrNotFound
	}

	var row visitorRow
	if err := sqlx.GetContext(ctx, repo.ext(exec), &row, `SELECT * FROM visitor WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return reception.Visitor{}, reception.ErrNotFound
		}
		return reception.Visitor{}, errors.Wrap(err, "finding visitor")
	}
	return repo.unrow(row), nil
}

func (repo visitorRepository) UpdateVisitor(ctx context.Context, vis reception.Visitor, exec ...core.DBExecutor) (reception.Visitor, error) {
	row := repo.row(vis)

	const q = `
		UPDATE visitor
		SET name = :name, phone = :phone, purpose = :purpose, host = :host,
			checked_in_at = :checked_in_at, checked_out_at = :checked_out_at
		WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, repo.ext(exec), q, row)
	if err != nil {
		return reception.Visitor{}, errors.Wrap(err, "updating visitor")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return reception.Visitor{}, reception.ErrNotFound
	}
	return vis, nil
}

func (repo visitorRepository) DeleteVisitorsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	res, err := repo.ext(exec).ExecContext(ctx, `DELETE FROM visitor WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, errors.Wrap(err, "deleting visitors")
	}
	cnt, _ := res.RowsAffected()
	return int(cnt), nil
}
