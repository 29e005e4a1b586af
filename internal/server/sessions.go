package server

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkstudio/inkstudio/pkg/editor"
	"github.com/inkstudio/inkstudio/pkg/provider"
)

// session is one open editor reachable over HTTP.
type session struct {
	ID        string
	Editor    *editor.Editor
	CreatedAt time.Time
}

// SessionManager owns the open editors.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	provider provider.ElementProvider
	logger   *log.Logger
}

func NewSessionManager(p provider.ElementProvider, logger *log.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
		provider: p,
		logger:   logger,
	}
}

// Open starts an editor over baseImage and returns its session.
func (m *SessionManager) Open(baseImage string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	s := &session{ID: id, CreatedAt: time.Now()}
	s.Editor = editor.Open(baseImage,
		editor.WithProvider(m.provider),
		editor.WithLogger(m.logger),
		editor.WithOnClose(func() {
			m.logger.Printf("session %s closed", id)
		}),
	)
	m.sessions[id] = s
	return s
}

func (m *SessionManager) Get(id string) (*session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	return s, ok
}

// Close closes and forgets the session.
func (m *SessionManager) Close(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Editor.Close()
	}
	return ok
}

// CloseAll closes every session.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	open := m.sessions
	m.sessions = make(map[string]*session)
	m.mu.Unlock()

	for _, s := range open {
		s.Editor.Close()
	}
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
