// Package connections manages the guardian/student links a dashboard shows:
// the linked-student list, per-student dashboard snapshots, and the invite
// codes that create new links.
package connections

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"smartpath/internal/cache"
	"smartpath/internal/models"
)

var (
	// ErrNotLinked means the student is not in the current linked-student list
	ErrNotLinked = errors.New("student is not linked to this account")

	// ErrRemovalInFlight means a removal for this student is already pending
	ErrRemovalInFlight = errors.New("removal already in progress for this student")
)

// RelationshipService is the slice of the relationship client the manager needs
type RelationshipService interface {
	LinkedStudents(ctx context.Context) ([]models.LinkedStudent, error)
	LinkedGuardians(ctx context.Context) ([]models.LinkedGuardian, error)
	RemoveStudentLink(ctx context.Context, studentID int64) error
	StudentDashboard(ctx context.Context, studentID int64) (*models.DashboardSnapshot, error)
}

// InviteService is the slice of the invite client the manager needs
type InviteService interface {
	CreateInviteCode(ctx context.Context) (*models.InviteCode, error)
	MyInviteCodes(ctx context.Context) ([]models.InviteCode, error)
	RedeemInviteCode(ctx context.Context, code string) error
}

// Manager mutates guardian/student links and keeps the dependent cache
// entries coherent
type Manager struct {
	relationships RelationshipService
	invites       InviteService
	cache         *cache.Store
	logger        *zap.Logger

	mu        sync.Mutex
	removing  map[int64]bool
	onRemoved func(studentID int64)
}

// NewManager creates a connection manager
func NewManager(relationships RelationshipService, invites InviteService, queries *cache.Store, logger *zap.Logger) *Manager {
	return &Manager{
		relationships: relationships,
		invites:       invites,
		cache:         queries,
		logger:        logger,
		removing:      make(map[int64]bool),
	}
}

// OnStudentRemoved registers the observer notified after a successful removal
func (m *Manager) OnStudentRemoved(fn func(studentID int64)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRemoved = fn
}

// LinkedStudents returns the cached linked-student list, fetching on a miss
func (m *Manager) LinkedStudents(ctx context.Context) ([]models.LinkedStudent, error) {
	return cache.Lookup(ctx, m.cache, cache.LinkedStudents(), m.relationships.LinkedStudents)
}

// LinkedGuardians returns the guardians linked to the current student
func (m *Manager) LinkedGuardians(ctx context.Context) ([]models.LinkedGuardian, error) {
	return cache.Lookup(ctx, m.cache, cache.LinkedGuardians(), m.relationships.LinkedGuardians)
}

// StudentDashboard returns one linked student's dashboard snapshot. Until the
// student id has resolved to a concrete value the query is inert and returns
// cache.ErrNotReady without issuing a request.
func (m *Manager) StudentDashboard(ctx context.Context, studentID int64) (*models.DashboardSnapshot, error) {
	if studentID == 0 {
		return nil, cache.ErrNotReady
	}
	return cache.Lookup(ctx, m.cache, cache.ChildDashboard(studentID), func(ctx context.Context) (*models.DashboardSnapshot, error) {
		return m.relationships.StudentDashboard(ctx, studentID)
	})
}

// Removing reports whether a removal for the student is in flight
func (m *Manager) Removing(studentID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removing[studentID]
}

// Remove severs the link to one student. The student must appear in the
// current linked-student list, and only one removal per student may be in
// flight; a duplicate call is rejected, not queued. Removal is irreversible,
// so callers must confirm with the user before invoking this.
func (m *Manager) Remove(ctx context.Context, studentID int64) error {
	students, err := m.LinkedStudents(ctx)
	if err != nil {
		return err
	}
	linked := false
	for _, student := range students {
		if student.StudentID == studentID {
			linked = true
			break
		}
	}
	if !linked {
		return ErrNotLinked
	}

	m.mu.Lock()
	if m.removing[studentID] {
		m.mu.Unlock()
		return ErrRemovalInFlight
	}
	m.removing[studentID] = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.removing, studentID)
		m.mu.Unlock()
	}()

	if err := m.relationships.RemoveStudentLink(ctx, studentID); err != nil {
		m.logger.Warn("student removal failed", zap.Int64("studentID", studentID), zap.Error(err))
		return err
	}

	m.cache.Invalidate(cache.LinkedStudents())
	m.cache.Invalidate(cache.ChildDashboard(studentID))
	m.logger.Info("student link removed", zap.Int64("studentID", studentID))

	m.mu.Lock()
	observer := m.onRemoved
	m.mu.Unlock()
	if observer != nil {
		observer(studentID)
	}
	return nil
}

// CreateInviteCode mints a new code and refreshes the code list
func (m *Manager) CreateInviteCode(ctx context.Context) (*models.InviteCode, error) {
	code, err := m.invites.CreateInviteCode(ctx)
	if err != nil {
		return nil, err
	}
	m.cache.Invalidate(cache.InviteCodes())
	return code, nil
}

// InviteCodes returns the caller's invite codes
func (m *Manager) InviteCodes(ctx context.Context) ([]models.InviteCode, error) {
	return cache.Lookup(ctx, m.cache, cache.InviteCodes(), m.invites.MyInviteCodes)
}

// RedeemInviteCode links the current student to the code's creator and
// invalidates both sides of the relation
func (m *Manager) RedeemInviteCode(ctx context.Context, code string) error {
	if err := m.invites.RedeemInviteCode(ctx, code); err != nil {
		return err
	}
	m.cache.Invalidate(cache.LinkedGuardians())
	m.cache.Invalidate(cache.LinkedStudents())
	m.logger.Info("invite code redeemed")
	return nil
}
