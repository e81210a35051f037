package handler

// Error message constants to avoid duplication and improve maintainability
const (
	invalidRequestBody = "Invalid request body"
	invalidUserName    = "userName may only contain letters, digits, '.', '_' or '-' (max 64 chars)"
	invalidDisplayName = "displayName must be at most 128 characters"
	userNotFound       = "User not found"
	objectNotFound     = "Object not found"
)
