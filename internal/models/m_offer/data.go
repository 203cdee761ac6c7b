package m_offer

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// UpsertMutation writes one offer row; replaying it is harmless.
func UpsertMutation(productID, offerID, name string, price *big.Rat, isDefault bool, position int64, updatedAt time.Time) *spanner.Mutation {
	return spanner.InsertOrUpdateMap(TableName, map[string]interface{}{
		ColProductID: productID,
		ColOfferID:   offerID,
		ColName:      name,
		ColPrice:     price,
		ColIsDefault: isDefault,
		ColPosition:  position,
		ColUpdatedAt: updatedAt,
	})
}

// DeleteMutation removes one offer row. Deleting a missing row is not an error.
func DeleteMutation(productID, offerID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID, offerID})
}
