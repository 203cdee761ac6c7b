package m_gateway_credential

import (
	"time"

	"cloud.google.com/go/spanner"
)

// UpsertMutation records whether a seller configured a gateway.
func UpsertMutation(sellerID, gateway string, configured bool, updatedAt time.Time) *spanner.Mutation {
	return spanner.InsertOrUpdateMap(TableName, map[string]interface{}{
		ColSellerID:   sellerID,
		ColGateway:    gateway,
		ColConfigured: configured,
		ColUpdatedAt:  updatedAt,
	})
}
