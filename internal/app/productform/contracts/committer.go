package contracts

import (
	"context"

	commitplan "github.com/murkotick/product-form-service/internal/pkg/committer"
)

// Committer applies a plan of mutations atomically. Each save handler
// commits its own plan, so one handler's writes are all-or-nothing while a
// save run as a whole is not.
type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error
}
