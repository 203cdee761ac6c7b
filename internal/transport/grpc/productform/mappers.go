package productform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/machine"
	"github.com/murkotick/product-form-service/internal/app/productform/tabs"
)

// Save outcomes reported by SaveAll.
const (
	outcomeSaved            = "saved"
	outcomeValidationFailed = "validation_failed"
	outcomeSaveFailed       = "save_failed"
)

type saveErrorView struct {
	Tab     domain.TabKey `json:"tab,omitempty"`
	Order   int           `json:"order,omitempty"`
	Message string        `json:"message"`
}

type stateView struct {
	Status        machine.Status             `json:"status"`
	ProductID     string                     `json:"product_id"`
	ActiveTab     domain.TabKey              `json:"active_tab"`
	HasChanges    bool                       `json:"has_changes"`
	Dirty         domain.DirtyFlags          `json:"dirty"`
	Saving        bool                       `json:"saving"`
	SaveAttempts  int                        `json:"save_attempts"`
	ErrorsByTab   domain.ErrorsByTab         `json:"errors_by_tab"`
	TabErrors     tabs.TabValidationMap      `json:"tab_errors"`
	Navigation    *tabs.Navigation           `json:"navigation,omitempty"`
	LastSaveError *saveErrorView             `json:"last_save_error,omitempty"`
	LoadError     string                     `json:"load_error,omitempty"`
	LoadAttempts  int                        `json:"load_attempts"`
	Server        *domain.ServerDataSnapshot `json:"server,omitempty"`
	Edited        *domain.EditedFormData     `json:"edited,omitempty"`
	Outcome       string                     `json:"outcome,omitempty"`
}

func newStateView(st machine.State) stateView {
	c := st.Context
	v := stateView{
		Status:       st.Status,
		ProductID:    c.ProductID,
		ActiveTab:    st.ActiveTab(),
		HasChanges:   machine.IsDirty(st),
		Dirty:        c.Dirty,
		Saving:       c.Saving,
		SaveAttempts: c.SaveAttempts,
		ErrorsByTab:  c.ErrorsByTab,
		TabErrors:    st.TabErrors(),
		Navigation:   c.Navigation,
		LoadAttempts: c.LoadAttempts,
	}
	if c.LoadError != nil {
		v.LoadError = c.LoadError.Error()
	}
	if c.LastSaveError != nil {
		v.LastSaveError = &saveErrorView{Message: c.LastSaveError.Error()}
		var serr *domain.SaveError
		if errors.As(c.LastSaveError, &serr) {
			v.LastSaveError.Tab = serr.TabKey
			v.LastSaveError.Order = serr.Order
		}
	}
	if st.Status != machine.StatusIdle && st.Status != machine.StatusLoading && st.Status != machine.StatusLoadError {
		server := c.Server
		edited := c.Edited.Clone()
		// Upload bytes are not echoed back.
		if edited.Image.Upload != nil {
			edited.Image.Upload.Data = nil
		}
		v.Server, v.Edited = &server, &edited
	}
	return v
}

func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

func mapState(st machine.State, outcome string) (*structpb.Struct, error) {
	v := newStateView(st)
	v.Outcome = outcome
	return toStruct(v)
}

// decodePatch decodes a Struct into dst, rejecting unknown fields.
func decodePatch(patch *structpb.Struct, dst any) error {
	b, err := protojson.Marshal(patch)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

type imagePatch struct {
	domain.ImagePatch
	Reset bool `json:"reset,omitempty"`
}

// mapEditEvent builds the edit event of section from patch.
func mapEditEvent(section string, patch *structpb.Struct) (machine.Event, error) {
	switch domain.Section(section) {
	case domain.SectionGeneral:
		var p domain.GeneralPatch
		if err := decodePatch(patch, &p); err != nil {
			return nil, fmt.Errorf("general patch: %w", err)
		}
		return machine.EditGeneral{Patch: p}, nil

	case domain.SectionImage:
		var p imagePatch
		if err := decodePatch(patch, &p); err != nil {
			return nil, fmt.Errorf("image patch: %w", err)
		}
		if p.Reset {
			return machine.ResetImage{}, nil
		}
		return machine.EditImage{Patch: p.ImagePatch}, nil

	case domain.SectionOffers:
		var p domain.OffersPatch
		if err := decodePatch(patch, &p); err != nil {
			return nil, fmt.Errorf("offers patch: %w", err)
		}
		return machine.EditOffers{Patch: p}, nil

	case domain.SectionCheckoutSettings:
		var p domain.CheckoutSettingsPatch
		if err := decodePatch(patch, &p); err != nil {
			return nil, fmt.Errorf("checkout settings patch: %w", err)
		}
		return machine.EditCheckoutSettings{Patch: p}, nil

	case domain.SectionUpsell:
		var p domain.UpsellPatch
		if err := decodePatch(patch, &p); err != nil {
			return nil, fmt.Errorf("upsell patch: %w", err)
		}
		return machine.EditUpsell{Patch: p}, nil

	case domain.SectionAffiliate:
		var p domain.AffiliatePatch
		if err := decodePatch(patch, &p); err != nil {
			return nil, fmt.Errorf("affiliate patch: %w", err)
		}
		return machine.EditAffiliate{Patch: p}, nil
	}
	return nil, fmt.Errorf("unknown section %q", section)
}

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("price: %w", err)
	}
	return d, nil
}
