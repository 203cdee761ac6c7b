package m_gateway_credential

// Gateway credentials belong to the seller; the form only reads them.
const (
	TableName = "gateway_credentials"

	ColSellerID   = "seller_id"
	ColGateway    = "gateway"
	ColConfigured = "configured"
	ColUpdatedAt  = "updated_at"
)
