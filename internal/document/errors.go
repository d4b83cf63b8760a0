package document

import "errors"

var (
	// ErrInvalidNode is returned when a nil node or a node of the wrong type is
	// handed to a tree operation.
	ErrInvalidNode = errors.New("invalid node")

	// ErrInvalidOperation is returned for structural violations such as adding
	// children to a leaf or substituting a detached node.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrDuplicateKey is returned when a document is registered twice or
	// without a path.
	ErrDuplicateKey = errors.New("duplicate key")
)
