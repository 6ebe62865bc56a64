package session

import (
	"context"

	"go.uber.org/zap"

	"smartpath/internal/models"
)

// Decision is the outcome of a role-gated access check
type Decision int

const (
	// DecisionGrant allows the protected view to render
	DecisionGrant Decision = iota
	// DecisionRedirectLogin sends an unauthenticated visitor to the login entry
	DecisionRedirectLogin
	// DecisionRedirectHome sends an authenticated but unauthorized user to the
	// landing dashboard with a visible notice
	DecisionRedirectHome
)

// Result is the resolved guard outcome. User is set only on a grant, so the
// protected content can never be derived from a denied result.
type Result struct {
	Decision Decision
	User     *models.User
	Notice   string
}

// Guard gates access to a protected view by required role
type Guard struct {
	store  *Store
	logger *zap.Logger
}

// NewGuard creates a role guard over the session store
func NewGuard(store *Store, logger *zap.Logger) *Guard {
	return &Guard{store: store, logger: logger}
}

// Check resolves the current user and compares its role to the requirement.
// A profile failure of any kind reads as unauthenticated.
func (g *Guard) Check(ctx context.Context, required models.Role) Result {
	user, err := g.store.CurrentUser(ctx)
	if err != nil {
		g.logger.Debug("guard denied: no resolvable user", zap.Error(err))
		return Result{Decision: DecisionRedirectLogin}
	}

	if user.Role != required {
		g.logger.Info("guard denied: insufficient role",
			zap.String("have", string(user.Role)),
			zap.String("need", string(required)),
		)
		return Result{
			Decision: DecisionRedirectHome,
			Notice:   "access denied: this area requires " + string(required) + " access",
		}
	}

	return Result{Decision: DecisionGrant, User: user}
}
