package data

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// ListRequest represents a skip/limit window over a collection
type ListRequest struct {
	Skip  int `json:"skip,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// Page is one window of a collection plus the collection's total size
type Page[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

// Validate validates and normalizes list request parameters
func (req *ListRequest) Validate() {
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}
	if req.Skip < 0 {
		req.Skip = 0
	}
}

// ServiceError wraps a repository failure with the operation that hit it
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "data service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
