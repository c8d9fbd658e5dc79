package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	if !isUniqueViolation(dup) {
		t.Error("expected 23505 to be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert: %w", dup)) {
		t.Error("expected wrapped 23505 to be a unique violation")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Error("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Error("plain error is not a unique violation")
	}
}

type fakeResult struct {
	n   int64
	err error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.n, r.err }

func TestAffectedOrNotFound(t *testing.T) {
	notFound := errors.New("missing")
	if err := affectedOrNotFound(fakeResult{n: 1}, notFound); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := affectedOrNotFound(fakeResult{n: 0}, notFound); !errors.Is(err, notFound) {
		t.Fatalf("expected notFound, got %v", err)
	}
	boom := errors.New("driver")
	if err := affectedOrNotFound(fakeResult{err: boom}, notFound); !errors.Is(err, boom) {
		t.Fatalf("expected driver error, got %v", err)
	}
}
