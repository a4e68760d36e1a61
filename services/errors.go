package services

// ServiceError is a typed error with an HTTP status code. Controllers map it
// directly onto the response.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }
