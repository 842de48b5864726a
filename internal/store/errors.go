package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// Sentinel errors for store operations. Check with errors.Is.
var (
	// ErrNotFound indicates the requested fact does not exist.
	ErrNotFound = errors.New("fact not found")

	// ErrTransactionConflict indicates a SurrealDB transaction conflict from
	// concurrent writes to the same record. Callers should retry or skip.
	ErrTransactionConflict = errors.New("transaction conflict")
)

// wrapQueryError maps known SurrealDB query errors onto sentinel errors so
// callers can branch with errors.Is. Unknown errors pass through unchanged.
func wrapQueryError(err error) error {
	if err == nil {
		return nil
	}

	var queryErr *surrealdb.QueryError
	if errors.As(err, &queryErr) {
		if strings.Contains(queryErr.Message, "Transaction conflict") {
			return fmt.Errorf("%w: %s", ErrTransactionConflict, queryErr.Message)
		}
	}

	return err
}
