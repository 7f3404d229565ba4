package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteError(t *testing.T) {
	unique := &pq.Error{Code: "23505", Constraint: "match_requests_one_pending_per_mentee"}
	err := mapWriteError(fmt.Errorf("insert: %w", unique))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "match_requests_one_pending_per_mentee")

	fk := &pq.Error{Code: "23503"}
	assert.Same(t, fk, mapWriteError(fk))

	plain := errors.New("boom")
	assert.Equal(t, plain, mapWriteError(plain))
}
