package productform

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/machine"
	"github.com/murkotick/product-form-service/internal/app/productform/session"
)

// Handler is a thin gRPC transport adapter over the session manager.
// It validates input, maps Struct payloads to machine events and returns
// the resulting form state.
type Handler struct {
	sessions *session.Manager
	logger   *zap.Logger
}

var _ ProductFormServiceServer = (*Handler)(nil)

func NewHandler(sessions *session.Manager, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{sessions: sessions, logger: logger.Named("grpc_productform")}
}

func invalid(err error) error {
	return status.Error(codes.InvalidArgument, err.Error())
}

func (h *Handler) machineFor(in *structpb.Struct) (*machine.Machine, error) {
	sessionID, err := requireString(in, "session_id")
	if err != nil {
		return nil, invalid(err)
	}
	m, err := h.sessions.Get(sessionID)
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

func (h *Handler) reply(st machine.State, outcome string) (*structpb.Struct, error) {
	out, err := mapState(st, outcome)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// send dispatches ev and returns the resulting state.
func (h *Handler) send(ctx context.Context, in *structpb.Struct, ev func() (machine.Event, error)) (*structpb.Struct, error) {
	m, err := h.machineFor(in)
	if err != nil {
		return nil, err
	}
	e, err := ev()
	if err != nil {
		return nil, invalid(err)
	}
	if err := m.Send(ctx, e); err != nil {
		return nil, mapError(err)
	}
	return h.reply(m.State(), "")
}

func (h *Handler) Open(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireString(in, "session_id")
	if err != nil {
		return nil, invalid(err)
	}
	productID, err := requireString(in, "product_id")
	if err != nil {
		return nil, invalid(err)
	}

	m, err := h.sessions.Open(ctx, sessionID, productID)
	if err != nil {
		var lerr *domain.LoadError
		// A failed load still opens the session; the state carries the error.
		if m == nil || !errors.As(err, &lerr) || errors.Is(err, domain.ErrProductNotFound) {
			return nil, mapError(err)
		}
	}
	return h.reply(m.State(), "")
}

func (h *Handler) GetState(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	m, err := h.machineFor(in)
	if err != nil {
		return nil, err
	}
	return h.reply(m.State(), "")
}

func (h *Handler) Edit(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return h.send(ctx, in, func() (machine.Event, error) {
		section, err := requireString(in, "section")
		if err != nil {
			return nil, err
		}
		patch, err := requireStruct(in, "patch")
		if err != nil {
			return nil, err
		}
		return mapEditEvent(section, patch)
	})
}

func (h *Handler) AddOffer(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return h.send(ctx, in, func() (machine.Event, error) {
		name, err := requireString(in, "name")
		if err != nil {
			return nil, err
		}
		raw, err := requireString(in, "price")
		if err != nil {
			return nil, err
		}
		price, err := parsePrice(raw)
		if err != nil {
			return nil, err
		}
		return machine.NewAddOffer(name, price), nil
	})
}

func (h *Handler) DeleteOffer(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return h.send(ctx, in, func() (machine.Event, error) {
		id, err := requireString(in, "offer_id")
		if err != nil {
			return nil, err
		}
		return machine.DeleteOffer{OfferID: id}, nil
	})
}

func (h *Handler) SetTab(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return h.send(ctx, in, func() (machine.Event, error) {
		tab, err := requireString(in, "tab")
		if err != nil {
			return nil, err
		}
		return machine.SetTab{Tab: domain.TabKey(tab)}, nil
	})
}

// SaveAll waits for the run to settle. Validation and handler failures are
// reported in the state, not as RPC errors.
func (h *Handler) SaveAll(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	m, err := h.machineFor(in)
	if err != nil {
		return nil, err
	}

	st, err := m.SaveAll(ctx)
	var (
		verr *domain.ValidationFailedError
		serr *domain.SaveError
	)
	switch {
	case err == nil:
		return h.reply(st, outcomeSaved)
	case errors.As(err, &verr):
		return h.reply(st, outcomeValidationFailed)
	case errors.As(err, &serr), errors.Is(err, domain.ErrHandlerFailed):
		return h.reply(st, outcomeSaveFailed)
	}
	return nil, mapError(err)
}

func (h *Handler) Discard(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return h.send(ctx, in, func() (machine.Event, error) { return machine.DiscardChanges{}, nil })
}

func (h *Handler) Retry(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	m, err := h.machineFor(in)
	if err != nil {
		return nil, err
	}
	if err := m.Retry(ctx); err != nil {
		var lerr *domain.LoadError
		if !errors.As(err, &lerr) {
			return nil, mapError(err)
		}
	}
	return h.reply(m.State(), "")
}

func (h *Handler) Close(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireString(in, "session_id")
	if err != nil {
		return nil, invalid(err)
	}
	if err := h.sessions.Close(ctx, sessionID); err != nil {
		return nil, mapError(err)
	}
	return &structpb.Struct{}, nil
}
