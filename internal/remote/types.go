package remote

// Task is a named unit of work; the id is assigned by the remote store.
type Task struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type createRequest struct {
	Name string `json:"name"`
}
