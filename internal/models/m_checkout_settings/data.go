package m_checkout_settings

import "cloud.google.com/go/spanner"

// UpsertMutation writes the settings row keyed by product_id.
func UpsertMutation(values map[string]interface{}) *spanner.Mutation {
	return spanner.InsertOrUpdateMap(TableName, values)
}
