package usecase

import "github.com/taskflow/backend/domain"

// ChangeNotifier is a best-effort side channel telling connected clients
// about task mutations. Implementations must be fire-and-forget: they never
// block the caller and swallow their own failures. Clients re-fetch to
// rebuild state; the broadcast is never their only source of truth.
type ChangeNotifier interface {
	TaskChanged(task *domain.Task)
	TaskDeleted(id int64)
}
