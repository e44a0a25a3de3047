package admin

import "sync"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a transient message shown once to the admin.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// Notices queues messages until they are drained.
type Notices struct {
	mu      sync.Mutex
	pending []Notice
}

func (n *Notices) push(level Level, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, Notice{Level: level, Title: title, Message: message})
}

// Drain returns the pending notices and forgets them.
func (n *Notices) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}
