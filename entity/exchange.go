package entity

import "time"

// Exchange is a journal record of one API call. Request holds the sent JSON
// with card data and tokens masked.
type Exchange struct {
	RequestId       string    `json:"request_id" bson:"request_id"`
	TransactionType string    `json:"transaction_type" bson:"transaction_type"`
	OrderReference  string    `json:"order_reference" bson:"order_reference"`
	Request         string    `json:"request" bson:"request"`
	Response        Response  `json:"response,omitempty" bson:"response"`
	Error           string    `json:"error,omitempty" bson:"error"`
	Duration        int64     `json:"duration_ms" bson:"duration_ms"`
	Time            time.Time `json:"time" bson:"time"`
}

func (e *Exchange) DataType() string {
	return "exchange"
}
