package service

// defaultPageSize is both the default and the server-side cap for list
// endpoints, bounding result size regardless of what the client asks for.
const defaultPageSize = 50

func clampPageSize(limit int) int {
	if limit <= 0 || limit > defaultPageSize {
		return defaultPageSize
	}
	return limit
}
