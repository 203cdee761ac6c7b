package machine

import (
	"github.com/shopspring/decimal"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

// Event is the closed set of inputs the machine accepts.
type Event interface {
	Name() string
	isEvent()
}

type (
	// Load starts fetching the product aggregate.
	Load struct{ ProductID string }

	// ReceiveData delivers the normalized aggregate from the load actor.
	ReceiveData struct{ Snapshot domain.ServerDataSnapshot }

	// LoadFailed reports a failed aggregate fetch.
	LoadFailed struct{ Err error }

	// Retry re-enters loading from loadError.
	Retry struct{}

	EditGeneral          struct{ Patch domain.GeneralPatch }
	EditImage            struct{ Patch domain.ImagePatch }
	EditOffers           struct{ Patch domain.OffersPatch }
	EditCheckoutSettings struct{ Patch domain.CheckoutSettingsPatch }
	EditUpsell           struct{ Patch domain.UpsellPatch }
	EditAffiliate        struct{ Patch domain.AffiliatePatch }

	// ResetImage drops a pending upload or removal.
	ResetImage struct{}

	// AddOffer appends an offer, usually one built by NewAddOffer.
	AddOffer struct{ Offer domain.Offer }

	DeleteOffer struct{ OfferID string }

	// SaveAll validates and persists every section.
	SaveAll struct{}

	// ValidationFailed is sent by the save actor when validation aborts a save.
	ValidationFailed struct {
		ErrorsByTab   domain.ErrorsByTab
		FirstErrorTab domain.TabKey
	}

	// SaveSucceeded carries the working copy the save handlers committed.
	SaveSucceeded struct{ Committed domain.EditedFormData }

	// SaveFailed carries the handler failure that stopped the run.
	SaveFailed struct{ Err *domain.SaveError }

	DiscardChanges struct{}

	SetTab struct{ Tab domain.TabKey }
)

// NewAddOffer builds an AddOffer event for a fresh temporary offer.
func NewAddOffer(name string, price decimal.Decimal) AddOffer {
	return AddOffer{Offer: domain.NewTemporaryOffer(name, price)}
}

func (Load) Name() string                 { return "LOAD" }
func (ReceiveData) Name() string          { return "RECEIVE_DATA" }
func (LoadFailed) Name() string           { return "LOAD_ERROR" }
func (Retry) Name() string                { return "RETRY" }
func (EditGeneral) Name() string          { return "EDIT_GENERAL" }
func (EditImage) Name() string            { return "EDIT_IMAGE" }
func (EditOffers) Name() string           { return "EDIT_OFFERS" }
func (EditCheckoutSettings) Name() string { return "EDIT_CHECKOUT_SETTINGS" }
func (EditUpsell) Name() string           { return "EDIT_UPSELL" }
func (EditAffiliate) Name() string        { return "EDIT_AFFILIATE" }
func (ResetImage) Name() string           { return "RESET_IMAGE" }
func (AddOffer) Name() string             { return "ADD_OFFER" }
func (DeleteOffer) Name() string          { return "DELETE_OFFER" }
func (SaveAll) Name() string              { return "SAVE_ALL" }
func (ValidationFailed) Name() string     { return "VALIDATION_FAILED" }
func (SaveSucceeded) Name() string        { return "SAVE_SUCCESS" }
func (SaveFailed) Name() string           { return "SAVE_ERROR" }
func (DiscardChanges) Name() string       { return "DISCARD_CHANGES" }
func (SetTab) Name() string               { return "SET_TAB" }

func (Load) isEvent()                 {}
func (ReceiveData) isEvent()          {}
func (LoadFailed) isEvent()           {}
func (Retry) isEvent()                {}
func (EditGeneral) isEvent()          {}
func (EditImage) isEvent()            {}
func (EditOffers) isEvent()           {}
func (EditCheckoutSettings) isEvent() {}
func (EditUpsell) isEvent()           {}
func (EditAffiliate) isEvent()        {}
func (ResetImage) isEvent()           {}
func (AddOffer) isEvent()             {}
func (DeleteOffer) isEvent()          {}
func (SaveAll) isEvent()              {}
func (ValidationFailed) isEvent()     {}
func (SaveSucceeded) isEvent()        {}
func (SaveFailed) isEvent()           {}
func (DiscardChanges) isEvent()       {}
func (SetTab) isEvent()               {}

// sectionOf returns the section an edit event targets.
func sectionOf(ev Event) (domain.Section, bool) {
	switch ev.(type) {
	case EditGeneral:
		return domain.SectionGeneral, true
	case EditImage, ResetImage:
		return domain.SectionImage, true
	case EditOffers, AddOffer, DeleteOffer:
		return domain.SectionOffers, true
	case EditCheckoutSettings:
		return domain.SectionCheckoutSettings, true
	case EditUpsell:
		return domain.SectionUpsell, true
	case EditAffiliate:
		return domain.SectionAffiliate, true
	}
	return "", false
}
