package vital

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

const vitalCols = `id, vital_type, value, unit, recorded_at, created_at`

func (r *repoPG) scan(row pgx.Row) (*Vital, error) {
	var v Vital
	err := row.Scan(&v.ID, &v.VitalType, &v.Value, &v.Unit, &v.RecordedAt, &v.CreatedAt)
	return &v, err
}

func (r *repoPG) Create(ctx context.Context, v *Vital) error {
	v.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO vital (id, vital_type, value, unit, recorded_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		v.ID, v.VitalType, v.Value, v.Unit, v.RecordedAt).
		Scan(&v.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Vital, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+vitalCols+` FROM vital WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, v *Vital) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE vital SET vital_type=$2, value=$3, unit=$4, recorded_at=$5
		WHERE id = $1`,
		v.ID, v.VitalType, v.Value, v.Unit, v.RecordedAt)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM vital WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Vital, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM vital`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+vitalCols+` FROM vital ORDER BY recorded_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Vital
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func (r *repoPG) All(ctx context.Context) ([]*Vital, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+vitalCols+` FROM vital ORDER BY recorded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]*Vital, 0)
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (r *repoPG) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM vital`).Scan(&s.Total); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) Replace(ctx context.Context, items []*Vital) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		tx := db.TxFromContext(ctx)
		if _, err := tx.Exec(ctx, `DELETE FROM vital`); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		rows := make([][]interface{}, 0, len(items))
		for _, v := range items {
			rows = append(rows, []interface{}{uuid.New(), v.VitalType, v.Value, v.Unit, v.RecordedAt})
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{"vital"},
			[]string{"id", "vital_type", "value", "unit", "recorded_at"},
			pgx.CopyFromRows(rows))
		return err
	})
}
