package postgres

import (
	"context"

	"github.com/geocoder89/inscricoes/internal/domain/registration"
	"github.com/geocoder89/inscricoes/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/geocoder89/inscricoes/internal/repo/postgres")

type RegistrationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewRegistrationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *RegistrationsRepo {
	return &RegistrationsRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *RegistrationsRepo) observe(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	span.SetAttributes(attribute.String("db.system", "postgresql"))

	run := func() error { return fn(ctx) }

	var err error
	if repo.prom != nil {
		err = repo.prom.ObserveDB(op, run)
	} else {
		err = run()
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, op)
	}

	return err
}

// withConn runs fn on a connection taken from the pool. The connection goes
// back to the pool on every return path.
func (repo *RegistrationsRepo) withConn(ctx context.Context, fn func(conn *pgxpool.Conn) error) error {
	conn, err := repo.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(conn)
}

// Insert stores one registration and returns the id generated by the table.
func (repo *RegistrationsRepo) Insert(ctx context.Context, name, email, course string) (id int64, err error) {
	op := "registrations.insert"

	err = repo.observe(ctx, op, func(ctx context.Context) error {
		return repo.withConn(ctx, func(conn *pgxpool.Conn) error {
			return conn.QueryRow(ctx, `
				INSERT INTO inscricoes (nome, email, curso)
				VALUES ($1, $2, $3)
				RETURNING id
			`, name, email, course).Scan(&id)
		})
	})

	if err != nil {
		return 0, registration.NewStorageError(op, err)
	}

	return id, nil
}

// SelectAll returns every registration, newest first.
func (repo *RegistrationsRepo) SelectAll(ctx context.Context) (rows []registration.Row, err error) {
	op := "registrations.select_all"

	err = repo.observe(ctx, op, func(ctx context.Context) error {
		return repo.withConn(ctx, func(conn *pgxpool.Conn) error {
			r, qerr := conn.Query(ctx, `
				SELECT nome, email, curso
				FROM inscricoes
				ORDER BY id DESC
			`)
			if qerr != nil {
				return qerr
			}
			defer r.Close()

			out := make([]registration.Row, 0)

			for r.Next() {
				var row registration.Row
				if scanErr := r.Scan(&row.Name, &row.Email, &row.Course); scanErr != nil {
					return scanErr
				}
				out = append(out, row)
			}

			if r.Err() != nil {
				return r.Err()
			}

			rows = out
			return nil
		})
	})

	if err != nil {
		return nil, registration.NewStorageError(op, err)
	}

	return rows, nil
}

// Ping is used by the readiness probe.
func (repo *RegistrationsRepo) Ping(ctx context.Context) error {
	return repo.pool.Ping(ctx)
}
