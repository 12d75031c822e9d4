package resource

import "errors"

// Schema and instance errors. These are programmer errors and are returned
// immediately; callers match them with errors.Is.
var (
	ErrInvalidResourceType   = errors.New("invalid resource type")
	ErrReadOnlyAttribute     = errors.New("attribute cannot be modified once assigned")
	ErrInvalidAttributeValue = errors.New("invalid attribute value")
	ErrUnknownAttribute      = errors.New("unknown attribute")
)
