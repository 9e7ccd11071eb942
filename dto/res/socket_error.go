package res

// SocketError is written back on a room connection when a frame fails.
type SocketError struct {
	Event string `json:"event"`
	Code  string `json:"code"`
	Error string `json:"error"`
}
