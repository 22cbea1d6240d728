package services

// ServiceError carries an HTTP status code alongside a caller-facing message.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}
