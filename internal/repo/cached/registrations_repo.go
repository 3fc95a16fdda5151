// Package cached puts a read-through listing cache in front of a
// registrations gateway. Listings are cached under a version that every
// insert bumps, so a reader never gets a listing older than the last insert
// it observed.
package cached

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/geocoder89/inscricoes/internal/cache"
	"github.com/geocoder89/inscricoes/internal/domain/registration"
)

const (
	versionKey    = "inscricoes:list:version"
	listKeyPrefix = "inscricoes:list:v1:"
)

type Gateway interface {
	Insert(ctx context.Context, name, email, course string) (int64, error)
	SelectAll(ctx context.Context) ([]registration.Row, error)
}

type RegistrationsRepo struct {
	next  Gateway
	store cache.Store
	ttl   time.Duration
	log   *slog.Logger
}

func NewRegistrationsRepo(next Gateway, store cache.Store, ttl time.Duration, log *slog.Logger) *RegistrationsRepo {
	if log == nil {
		log = slog.Default()
	}

	return &RegistrationsRepo{next: next, store: store, ttl: ttl, log: log}
}

func listKey(version int64) string {
	return listKeyPrefix + strconv.FormatInt(version, 10)
}

// version reads the current listing version. A missing counter is version 0.
func (r *RegistrationsRepo) version(ctx context.Context) (int64, error) {
	b, ok, err := r.store.Get(ctx, versionKey)
	if err != nil || !ok {
		return 0, err
	}

	return strconv.ParseInt(string(b), 10, 64)
}

// Insert bumps the listing version once the row is stored. Listings cached
// under older versions are never read again and expire on their own.
func (r *RegistrationsRepo) Insert(ctx context.Context, name, email, course string) (int64, error) {
	id, err := r.next.Insert(ctx, name, email, course)
	if err != nil {
		return 0, err
	}

	if _, verr := r.store.Incr(ctx, versionKey); verr != nil {
		r.log.WarnContext(ctx, "list cache invalidation failed", "err", verr)
	}

	return id, nil
}

// SelectAll serves from the cache when possible. A listing is only cached if
// no insert happened while it was read. Cache errors fall through to the
// underlying gateway.
func (r *RegistrationsRepo) SelectAll(ctx context.Context) ([]registration.Row, error) {
	before, err := r.version(ctx)
	if err != nil {
		r.log.WarnContext(ctx, "list cache version read failed", "err", err)
		return r.next.SelectAll(ctx)
	}

	b, ok, err := r.store.Get(ctx, listKey(before))
	if err != nil {
		r.log.WarnContext(ctx, "list cache read failed", "err", err)
	}

	if ok {
		var rows []registration.Row
		if uerr := json.Unmarshal(b, &rows); uerr == nil {
			return rows, nil
		}
	}

	rows, err := r.next.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	after, err := r.version(ctx)
	if err != nil || after != before {
		return rows, nil
	}

	if b, merr := json.Marshal(rows); merr == nil {
		if serr := r.store.Set(ctx, listKey(before), b, r.ttl); serr != nil {
			r.log.WarnContext(ctx, "list cache write failed", "err", serr)
		}
	}

	return rows, nil
}
