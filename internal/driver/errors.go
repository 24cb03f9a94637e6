package driver

import (
	"errors"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const constraintViolationCode = "Neo.ClientError.Schema.ConstraintValidationFailed"

// IsConstraintViolation reports whether err was raised by a uniqueness
// constraint rejecting a write.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		return neoErr.Code == constraintViolationCode
	}
	// Memgraph reports violations as plain client errors.
	msg := err.Error()
	return strings.Contains(msg, constraintViolationCode) ||
		strings.Contains(strings.ToLower(msg), "unique constraint violation")
}
