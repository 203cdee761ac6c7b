package domain

// ServerDataSnapshot is the last known persisted value of every section.
// It is replaced wholesale on load and on a successful save, never patched.
type ServerDataSnapshot struct {
	ProductID        string             `json:"product_id"`
	General          General            `json:"general"`
	Image            Image              `json:"image"`
	Offers           Offers             `json:"offers"`
	CheckoutSettings CheckoutSettings   `json:"checkout_settings"`
	Upsell           Upsell             `json:"upsell"`
	Affiliate        *Affiliate         `json:"affiliate"`
	Credentials      GatewayCredentials `json:"credentials"`
}

// NewSnapshot normalizes s: edit markers are dropped so a fresh snapshot is
// always clean. The result shares no memory with s.
func NewSnapshot(s ServerDataSnapshot) ServerDataSnapshot {
	out := s.Clone()
	out.Image = out.Image.committed()
	out.Offers = out.Offers.committed()
	return out
}

func (s ServerDataSnapshot) Clone() ServerDataSnapshot {
	s.Image = s.Image.Clone()
	s.Offers = s.Offers.Clone()
	s.Affiliate = s.Affiliate.Clone()
	s.Credentials = s.Credentials.Clone()
	return s
}

// EditedFormData is the working copy of every section. Sections are
// independent values; no two share backing memory.
type EditedFormData struct {
	General          General          `json:"general"`
	Image            Image            `json:"image"`
	Offers           Offers           `json:"offers"`
	CheckoutSettings CheckoutSettings `json:"checkout_settings"`
	Upsell           Upsell           `json:"upsell"`
	Affiliate        *Affiliate       `json:"affiliate"`

	// Credentials is read-only context for validators; it is never edited
	// and never compared.
	Credentials GatewayCredentials `json:"credentials"`
}

// EditedFromSnapshot seeds a working copy from s.
func EditedFromSnapshot(s ServerDataSnapshot) EditedFormData {
	return EditedFormData{
		General:          s.General,
		Image:            s.Image.Clone(),
		Offers:           s.Offers.Clone(),
		CheckoutSettings: s.CheckoutSettings,
		Upsell:           s.Upsell,
		Affiliate:        s.Affiliate.Clone(),
		Credentials:      s.Credentials.Clone(),
	}
}

func (e EditedFormData) Clone() EditedFormData {
	e.Image = e.Image.Clone()
	e.Offers = e.Offers.Clone()
	e.Affiliate = e.Affiliate.Clone()
	e.Credentials = e.Credentials.Clone()
	return e
}

// Markers extracts the auxiliary dirty markers carried by e.
func (e EditedFormData) Markers() AuxiliaryMarkers {
	return AuxiliaryMarkers{
		DeletedOfferIDs:     append([]string(nil), e.Offers.DeletedIDs...),
		OffersModified:      e.Offers.Modified,
		ImagePendingUpload:  e.Image.Upload != nil,
		ImagePendingRemoval: e.Image.PendingRemoval,
	}
}

// Commit builds the snapshot that results from persisting e on top of prev.
// All sections are taken from e at once; read-only data comes from prev.
func (e EditedFormData) Commit(prev ServerDataSnapshot) ServerDataSnapshot {
	return NewSnapshot(ServerDataSnapshot{
		ProductID:        prev.ProductID,
		General:          e.General,
		Image:            e.Image,
		Offers:           e.Offers,
		CheckoutSettings: e.CheckoutSettings,
		Upsell:           e.Upsell,
		Affiliate:        e.Affiliate,
		Credentials:      prev.Credentials,
	})
}
