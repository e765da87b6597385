package patch

import (
	"fmt"
	"strings"
)

// ValidatePatchOperations checks every operation path against allowedPaths.
// An allowed path ending in "/*" admits any single child token.
func ValidatePatchOperations(ops []Operation, allowedPaths map[string]bool) error {
	if len(ops) == 0 {
		return nil
	}
	for i, op := range ops {
		if err := validatePathAllowed(op.Path, allowedPaths); err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
	}
	return nil
}

func validatePathAllowed(path string, allowedPaths map[string]bool) error {
	if len(allowedPaths) == 0 {
		return nil
	}
	if allowedPaths[path] {
		return nil
	}
	if i := strings.LastIndex(path, "/"); i >= 0 && allowedPaths[path[:i]+"/*"] {
		return nil
	}
	return fmt.Errorf("path %q is not in the allowed paths set", path)
}
