package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/yard-tracker/internal/http/middleware"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

type crudRepository[T models.Entity] interface {
	Create(T) (T, error)
	GetByID(id int) (T, error)
	Update(T) (T, error)
	Delete(id int) error
}

// resource describes one REST collection for the shared CRUD helpers.
type resource[T models.Entity] struct {
	entity    string
	namespace string
	repo      crudRepository[T]
	validate  func(T) fieldErrors
	withID    func(T, int) T
	onDelete  func(id int) // optional
}

func invalidate(ctx context.Context, namespace string) {
	if err := pageCache.Invalidate(ctx, namespace); err != nil {
		logger.Warn("cache invalidation failed", zap.String("namespace", namespace), zap.Error(err))
	}
}

// audit logs a successful mutation with the acting user.
func audit(r *http.Request, entity, action string, id int) {
	logger.Info(entity+" "+action,
		zap.Int("id", id),
		zap.Int("user_id", middleware.GetUserID(r)),
		zap.String("request_id", middleware.RequestID(r.Context())),
	)
}

func createEntity[T models.Entity](w http.ResponseWriter, r *http.Request, res resource[T]) {
	var in T
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	in = res.withID(in, 0)

	if errs := res.validate(in); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	created, err := res.repo.Create(in)
	if err != nil {
		writeRepoError(w, err, res.entity, "create")
		return
	}
	invalidate(r.Context(), res.namespace)
	audit(r, res.entity, "created", created.GetID())
	respond(w, http.StatusCreated, created)
}

func getEntity[T models.Entity](w http.ResponseWriter, r *http.Request, res resource[T]) {
	id, ok := pathID(w, r, res.entity)
	if !ok {
		return
	}
	found, err := res.repo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, res.entity, "fetch")
		return
	}
	respond(w, http.StatusOK, found)
}

func updateEntity[T models.Entity](w http.ResponseWriter, r *http.Request, res resource[T]) {
	id, ok := pathID(w, r, res.entity)
	if !ok {
		return
	}

	var in T
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	in = res.withID(in, id)

	if errs := res.validate(in); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	updated, err := res.repo.Update(in)
	if err != nil {
		writeRepoError(w, err, res.entity, "update")
		return
	}
	invalidate(r.Context(), res.namespace)
	audit(r, res.entity, "updated", id)
	respond(w, http.StatusOK, updated)
}

func deleteEntity[T models.Entity](w http.ResponseWriter, r *http.Request, res resource[T]) {
	id, ok := pathID(w, r, res.entity)
	if !ok {
		return
	}
	if err := res.repo.Delete(id); err != nil {
		writeRepoError(w, err, res.entity, "delete")
		return
	}
	if res.onDelete != nil {
		res.onDelete(id)
	}
	invalidate(r.Context(), res.namespace)
	audit(r, res.entity, "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// listCached serves fetch through the page cache under key.
func listCached[T any](w http.ResponseWriter, r *http.Request, namespace, key, entity string, fetch func() (T, error)) {
	var out T
	gen, hit, err := pageCache.Get(r.Context(), namespace, key, &out)
	if err != nil {
		logger.Warn("cache read failed", zap.String("namespace", namespace), zap.Error(err))
	}
	if hit && err == nil {
		respond(w, http.StatusOK, out)
		return
	}

	out, err = fetch()
	if err != nil {
		writeRepoError(w, err, entity, "fetch")
		return
	}
	if err := pageCache.Set(r.Context(), namespace, gen, key, out); err != nil {
		logger.Warn("cache write failed", zap.String("namespace", namespace), zap.Error(err))
	}
	respond(w, http.StatusOK, out)
}

func writeList[T any](w http.ResponseWriter, rows []T, err error, entity string) {
	if err != nil {
		writeRepoError(w, err, entity, "fetch")
		return
	}
	if rows == nil {
		rows = []T{}
	}
	respond(w, http.StatusOK, rows)
}
