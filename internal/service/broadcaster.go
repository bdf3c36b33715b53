package service

// Broadcaster pushes live session events to watchers. The websocket hub
// implements it; services stay transport-agnostic.
type Broadcaster interface {
	BroadcastToWatchers(sessionID string, event string, payload interface{})
}
