package implementation

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres unique_violation. Both the users email constraint and the
// user_devices pair constraint surface through this check.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
