package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/repository"
)

type accessLogRepo struct {
	db *sql.DB
}

func newAccessLogRepo(db *sql.DB) *accessLogRepo {
	return &accessLogRepo{db: db}
}

const insertAccessLog = `
	INSERT INTO access_logs (
		conn_id, peer, method, path, status, bytes, duration_ms, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

func (r *accessLogRepo) Insert(ctx context.Context, log *repository.AccessLog) error {
	if log.CreatedAt == 0 {
		log.CreatedAt = time.Now().Unix()
	}
	result, err := r.db.ExecContext(ctx, insertAccessLog,
		log.ConnID, log.Peer, log.Method, log.Path, log.Status, log.Bytes, log.DurationMs, log.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	log.ID = id
	return nil
}

func (r *accessLogRepo) BatchInsert(ctx context.Context, logs []*repository.AccessLog) error {
	if len(logs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertAccessLog)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, log := range logs {
		if log.CreatedAt == 0 {
			log.CreatedAt = now
		}
		if _, err := stmt.ExecContext(ctx,
			log.ConnID, log.Peer, log.Method, log.Path, log.Status, log.Bytes, log.DurationMs, log.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *accessLogRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM access_logs`).Scan(&n)
	return n, err
}

func (r *accessLogRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM access_logs WHERE created_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
