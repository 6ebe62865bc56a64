package api

import "errors"

var (
	// ErrUnauthenticated means there is no credential or the backend rejected it
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden means the session is valid but the role is insufficient
	ErrForbidden = errors.New("access denied")

	// ErrValidation means a client-side precondition failed and no request was issued
	ErrValidation = errors.New("validation failed")
)

// genericRemoteMessage is shown when the backend gave no usable message
const genericRemoteMessage = "something went wrong, please try again"

// RemoteError is a backend call that failed or returned an error payload
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return genericRemoteMessage
	}
	return e.Message
}

// NewRemoteError builds a RemoteError, falling back to a generic message
func NewRemoteError(status int, message string) *RemoteError {
	return &RemoteError{StatusCode: status, Message: message}
}

// UserMessage extracts the user-visible notice for a failed operation
func UserMessage(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Error()
	}
	if err != nil {
		return err.Error()
	}
	return genericRemoteMessage
}
