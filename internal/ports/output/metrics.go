package output

import "campusevents/internal/domain/entities"

// Metrics records outcomes of ledger operations.
type Metrics interface {
	InteractionApplied(kind entities.InteractionKind, err error)
}
