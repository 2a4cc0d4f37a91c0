package services

import (
	"context"

	"wayforpay/entity"
)

type Database interface {
	WriteLogMessage(data Data) error

	SaveExchange(ctx context.Context, exchange *entity.Exchange) error
	GetExchanges(ctx context.Context, orderReference string) ([]*entity.Exchange, error)
}

type Data interface {
	DataType() string
}
