package productform

import (
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/murkotick/product-form-service/internal/app/productform/actors"
	"github.com/murkotick/product-form-service/internal/app/productform/contracts"
	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/machine"
	"github.com/murkotick/product-form-service/internal/app/productform/queries"
	"github.com/murkotick/product-form-service/internal/app/productform/registry"
	"github.com/murkotick/product-form-service/internal/app/productform/repo"
	"github.com/murkotick/product-form-service/internal/app/productform/usecases/save_affiliate"
	"github.com/murkotick/product-form-service/internal/app/productform/usecases/save_checkout_settings"
	"github.com/murkotick/product-form-service/internal/app/productform/usecases/save_general"
	"github.com/murkotick/product-form-service/internal/app/productform/usecases/save_upsell"
	"github.com/murkotick/product-form-service/internal/app/productform/validation"
	"github.com/murkotick/product-form-service/internal/pkg/clock"
	committer "github.com/murkotick/product-form-service/internal/pkg/committer"
)

// Deps are the collaborators of the default save handlers and the load actor.
type Deps struct {
	ReadModel    contracts.ReadModel
	ProductRepo  contracts.ProductRepo
	OfferRepo    contracts.OfferRepo
	SettingsRepo contracts.SettingsRepo
	OutboxRepo   contracts.OutboxRepo
	Committer    contracts.Committer
	Images       contracts.ImageStore
	Clock        clock.Clock
}

// SpannerDeps wires the Spanner read model, repos and committer.
func SpannerDeps(client *spanner.Client, images contracts.ImageStore, logger *zap.Logger) Deps {
	return Deps{
		ReadModel:    queries.NewSpannerReadModel(client),
		ProductRepo:  repo.NewProductRepo(),
		OfferRepo:    repo.NewOfferRepo(),
		SettingsRepo: repo.NewSettingsRepo(),
		OutboxRepo:   repo.NewOutboxRepo(),
		Committer:    committer.NewAdapter(client, committer.WithLogger(logger)),
		Images:       images,
		Clock:        clock.RealClock{},
	}
}

// Config tunes the machines created by an Engine. Zero durations mean no bound.
type Config struct {
	MaxLoadAttempts    int
	LoadTimeout        time.Duration
	SaveHandlerTimeout time.Duration
	SaveAllTimeout     time.Duration
	CheckoutDefaults   *domain.CheckoutSettings
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithObserver(o actors.Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithoutDefaultHandlers leaves both registries empty.
func WithoutDefaultHandlers() Option {
	return func(e *Engine) { e.skipDefaults = true }
}

// Engine owns the handler registries shared by every form machine it creates.
type Engine struct {
	Validators *registry.ValidationRegistry
	Savers     *registry.SaveRegistry

	cfg          Config
	deps         Deps
	observer     actors.Observer
	skipDefaults bool
	logger       *zap.Logger

	loader *actors.LoadActor
	saver  *actors.SaveActor
}

func NewEngine(deps Deps, cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{cfg: cfg, deps: deps, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.cfg.MaxLoadAttempts <= 0 {
		e.cfg.MaxLoadAttempts = machine.DefaultMaxLoadAttempts
	}
	if deps.ReadModel == nil {
		return nil, fmt.Errorf("productform: read model is required")
	}

	e.Validators = registry.NewValidationRegistry(e.logger)
	e.Savers = registry.NewSaveRegistry(e.logger)

	if !e.skipDefaults {
		if err := e.registerDefaults(); err != nil {
			return nil, err
		}
	}

	loadOpts := []actors.LoadOption{actors.WithLoadLogger(e.logger)}
	if cfg.CheckoutDefaults != nil {
		loadOpts = append(loadOpts, actors.WithCheckoutDefaults(*cfg.CheckoutDefaults))
	}
	e.loader = actors.NewLoadActor(deps.ReadModel, loadOpts...)
	e.saver = actors.NewSaveActor(e.Validators, e.Savers,
		actors.WithSaveLogger(e.logger),
		actors.WithObserver(e.observer),
	)
	return e, nil
}

type defaultHandler struct {
	tab      domain.TabKey
	order    int
	label    string
	validate registry.ValidateFunc
	save     registry.SaveFunc
}

func (e *Engine) registerDefaults() error {
	d := e.deps
	if d.Committer == nil || d.OutboxRepo == nil || d.Clock == nil {
		return fmt.Errorf("productform: committer, outbox repo and clock are required for default handlers")
	}

	general := save_general.NewInteractor(d.ProductRepo, d.OfferRepo, d.OutboxRepo, d.Committer, d.Images, d.Clock)
	checkout := save_checkout_settings.NewInteractor(d.SettingsRepo, d.OutboxRepo, d.Committer, d.Clock)
	upsell := save_upsell.NewInteractor(d.SettingsRepo, d.OutboxRepo, d.Committer, d.Clock)
	affiliate := save_affiliate.NewInteractor(d.SettingsRepo, d.OutboxRepo, d.Committer, d.Clock)

	handlers := []defaultHandler{
		{domain.TabGeneral, domain.OrderGeneral, "general", validation.General, general.Execute},
		{domain.TabCheckout, domain.OrderCheckoutSettings, "checkout settings", validation.CheckoutSettings, checkout.Execute},
		{domain.TabUpsell, domain.OrderUpsell, "upsell", validation.Upsell, upsell.Execute},
		{domain.TabAffiliates, domain.OrderAffiliate, "affiliates", validation.Affiliate, affiliate.Execute},
	}

	for _, h := range handlers {
		if _, err := e.Validators.Register(h.tab, h.order, h.validate, registry.WithLabel(h.label)); err != nil {
			return fmt.Errorf("register %s validator: %w", h.tab, err)
		}
		opts := []registry.Option{registry.WithLabel(h.label)}
		if e.cfg.SaveHandlerTimeout > 0 {
			opts = append(opts, registry.WithTimeout(e.cfg.SaveHandlerTimeout))
		}
		if _, err := e.Savers.Register(h.tab, h.order, h.save, opts...); err != nil {
			return fmt.Errorf("register %s save handler: %w", h.tab, err)
		}
	}
	return nil
}

// NewMachine creates an idle form machine bound to the engine's actors.
func (e *Engine) NewMachine() *machine.Machine {
	return machine.New(e.loader, e.saver,
		machine.WithLogger(e.logger),
		machine.WithMaxLoadAttempts(e.cfg.MaxLoadAttempts),
		machine.WithActorTimeouts(e.cfg.LoadTimeout, e.cfg.SaveAllTimeout),
	)
}
