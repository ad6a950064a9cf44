package apperr

import "fmt"

// CodeResourceNotFound identifies lookups for entities that do not exist.
const CodeResourceNotFound = "RESOURCE_NOT_FOUND"

// ResourceNotFound builds the standard error for a missing entity, e.g.
// ResourceNotFound("Event", slug).
func ResourceNotFound(resourceType, resource string) *Error {
	return NotFound(
		CodeResourceNotFound,
		fmt.Sprintf("%s with identifier %q was not found", resourceType, resource),
	).WithDetails(map[string]string{"resourceType": resourceType, "resource": resource})
}
