package m_offer

// Field constants for the product_offers table (interleaved in products).
const (
	TableName = "product_offers"

	ColProductID = "product_id"
	ColOfferID   = "offer_id"
	ColName      = "name"
	ColPrice     = "price"
	ColIsDefault = "is_default"
	ColPosition  = "position"
	ColUpdatedAt = "updated_at"
)
