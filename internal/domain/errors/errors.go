package domainerrors

type DomainError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e DomainError) Error() string { return e.Message }

// Is matches domain errors by code so errors.Is works against the sentinel
// values regardless of attached details.
func (e DomainError) Is(target error) bool {
	t, ok := target.(DomainError)
	return ok && t.Code == e.Code
}

func New(code, message string, details map[string]interface{}) DomainError {
	return DomainError{Code: code, Message: message, Details: details}
}

var (
	// ErrNoCryptoSecret is a hard misconfiguration: no process-wide secret
	// for password hashing. It prevents authenticated traffic entirely
	// rather than failing per request.
	ErrNoCryptoSecret = DomainError{
		Code: "NO_CRYPTO_SECRET",
		Message: "Either no or the wrong crypto secret in the configuration. " +
			"Set the correct one as an environment variable called: 'CRYPTO_SECRET'.",
	}

	// ErrAlreadyInitialized means the one-time bootstrap (first key or
	// initial user) has already happened. An ordinary result, not a fault.
	ErrAlreadyInitialized = DomainError{Code: "ALREADY_INITIALIZED", Message: "Cannot create initial credential, as one already exists"}

	ErrDuplicateUser = DomainError{Code: "DUPLICATE_USER", Message: "User already exists"}
	ErrDuplicateKey  = DomainError{Code: "DUPLICATE_KEY", Message: "API key already exists"}
	ErrStoreNotFound = DomainError{Code: "STORE_NOT_FOUND", Message: "Store not found"}
	ErrInternal      = DomainError{Code: "INTERNAL_ERROR", Message: "Internal server error"}
)
