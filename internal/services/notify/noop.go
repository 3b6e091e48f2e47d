package notify

import (
	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/usecase"
)

// Noop is the default notifier when no channel is configured. Mutations
// still succeed; only the secondary broadcast is lost.
type Noop struct{}

func (Noop) TaskChanged(*domain.Task) {}

func (Noop) TaskDeleted(int64) {}

var _ usecase.ChangeNotifier = Noop{}
