package m_product

// Field constants for the products table.
const (
	TableName = "products"

	ColProductID        = "product_id"
	ColSellerID         = "seller_id"
	ColName             = "name"
	ColDescription      = "description"
	ColPrice            = "price"
	ColSupportName      = "support_name"
	ColSupportEmail     = "support_email"
	ColDeliveryURL      = "delivery_url"
	ColExternalDelivery = "external_delivery"
	ColDeliveryType     = "delivery_type"
	ColImageURL         = "image_url"
	ColCreatedAt        = "created_at"
	ColUpdatedAt        = "updated_at"
)
