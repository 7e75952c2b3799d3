package option

import (
	"errors"
	"fmt"
)

var (
	// ErrNestedGroup is returned when a group contains another group.
	ErrNestedGroup = errors.New("option: group nested inside group")

	// ErrNilNode is returned when the source hands Parse a nil child.
	ErrNilNode = errors.New("option: nil node")
)

// ParseError locates a parse failure in the source's direct children.
// Child is -1 when the failing node is a direct child, otherwise it is the
// offending position inside the group at Index.
type ParseError struct {
	Index int
	Child int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Child >= 0 {
		return fmt.Sprintf("option: node %d, child %d: %v", e.Index, e.Child, e.Err)
	}
	return fmt.Sprintf("option: node %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
