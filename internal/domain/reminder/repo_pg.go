package reminder

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medtrack/medtrack/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const reminderCols = `id, title, remind_at, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Reminder, error) {
	var rem Reminder
	err := row.Scan(&rem.ID, &rem.Title, &rem.RemindAt, &rem.CreatedAt, &rem.UpdatedAt)
	return &rem, err
}

func (r *repoPG) Create(ctx context.Context, rem *Reminder) error {
	rem.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO reminder (id, title, remind_at)
		VALUES ($1,$2,$3)
		RETURNING created_at, updated_at`,
		rem.ID, rem.Title, rem.RemindAt).
		Scan(&rem.CreatedAt, &rem.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Reminder, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+reminderCols+` FROM reminder WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rem *Reminder) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE reminder SET title=$2, remind_at=$3, updated_at=NOW()
		WHERE id = $1`,
		rem.ID, rem.Title, rem.RemindAt)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM reminder WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Reminder, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM reminder`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+reminderCols+` FROM reminder ORDER BY remind_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Reminder
	for rows.Next() {
		rem, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rem)
	}
	return items, total, rows.Err()
}

func (r *repoPG) All(ctx context.Context) ([]*Reminder, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+reminderCols+` FROM reminder ORDER BY remind_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]*Reminder, 0)
	for rows.Next() {
		rem, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rem)
	}
	return items, rows.Err()
}

func (r *repoPG) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE remind_at::date = CURRENT_DATE),
			COUNT(*) FILTER (WHERE remind_at >= NOW())
		FROM reminder`).Scan(&s.Total, &s.Today, &s.Upcoming)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) Replace(ctx context.Context, items []*Reminder) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		tx := db.TxFromContext(ctx)
		if _, err := tx.Exec(ctx, `DELETE FROM reminder`); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		rows := make([][]interface{}, 0, len(items))
		for _, rem := range items {
			rows = append(rows, []interface{}{uuid.New(), rem.Title, rem.RemindAt})
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{"reminder"},
			[]string{"id", "title", "remind_at"},
			pgx.CopyFromRows(rows))
		return err
	})
}
