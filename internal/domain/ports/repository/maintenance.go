package repository

import "context"

// MaintenanceRepository handles volatile state that does not survive a
// restart (online mode markers inherited from earlier deployments).
type MaintenanceRepository interface {
	ClearOnlineModes(ctx context.Context) (int64, error)
}
