package response

type ErrorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// WithPrefix renders "<prefix>: <err>", used by the write endpoints on storage failures.
func WithPrefix(prefix string, err error) ErrorResponse {
	return ErrorResponse{Error: prefix + ": " + err.Error()}
}
