package m_checkout_settings

const (
	TableName = "product_checkout_settings"

	ColProductID            = "product_id"
	ColRequireName          = "require_name"
	ColRequireEmail         = "require_email"
	ColRequirePhone         = "require_phone"
	ColRequireCPF           = "require_cpf"
	ColDefaultPaymentMethod = "default_payment_method"
	ColPixGateway           = "pix_gateway"
	ColCreditCardGateway    = "credit_card_gateway"
	ColUpdatedAt            = "updated_at"
)
