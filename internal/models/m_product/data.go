package m_product

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert mutation for a product using a map of values.
// Expected keys are the column names declared in fields.go.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation for a product.
// The values map must not include product_id; it is always written first.
func UpdateMutation(productID string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColProductID}
	vals := []interface{}{productID}

	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}

	return spanner.Update(TableName, cols, vals)
}

// BuildInsertMap prepares a minimal products row. Optional columns start as NULL.
func BuildInsertMap(productID, sellerID, name string, price *big.Rat, createdAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColProductID:        productID,
		ColSellerID:         sellerID,
		ColName:             name,
		ColDescription:      nil,
		ColPrice:            price,
		ColSupportName:      nil,
		ColSupportEmail:     nil,
		ColDeliveryURL:      nil,
		ColExternalDelivery: false,
		ColDeliveryType:     nil,
		ColImageURL:         nil,
		ColCreatedAt:        createdAt,
		ColUpdatedAt:        createdAt,
	}
}

// NullableString maps "" to NULL.
func NullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
