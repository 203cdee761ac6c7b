package m_affiliate

import "cloud.google.com/go/spanner"

func UpsertMutation(values map[string]interface{}) *spanner.Mutation {
	return spanner.InsertOrUpdateMap(TableName, values)
}
