package services

import (
	"context"

	"wayforpay/entity"
)

// Gateway builds signed WayForPay requests and sends them.
type Gateway interface {
	Prepare(transactionType entity.TransactionType, fields *entity.FieldMap) (*entity.FieldMap, error)
	BuildSignature(transactionType entity.TransactionType, fields *entity.FieldMap) (string, error)
	Query(ctx context.Context, transactionType entity.TransactionType, fields *entity.FieldMap) (entity.Response, error)

	BuildForm(fields *entity.FieldMap) (string, error)
	GeneratePurchaseURL(fields *entity.FieldMap) (string, error)
	BuildWidgetButton(fields *entity.FieldMap, callback string) (string, error)
}
