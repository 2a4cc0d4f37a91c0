// Package entity defines data models for the WayForPay client.
package entity

import "strings"

// TransactionType identifies a WayForPay API operation. The string value is
// the identifier sent in the transactionType field.
type TransactionType string

const (
	Purchase        TransactionType = "PURCHASE"
	Settle          TransactionType = "SETTLE"
	Charge          TransactionType = "CHARGE"
	Complete3DS     TransactionType = "COMPLETE_3DS"
	Refund          TransactionType = "REFUND"
	CheckStatus     TransactionType = "CHECK_STATUS"
	AccountToCard   TransactionType = "P2P_CREDIT"
	CreateInvoice   TransactionType = "CREATE_INVOICE"
	AccountToPhone  TransactionType = "P2_PHONE"
	TransactionList TransactionType = "TRANSACTION_LIST"
)

var transactionTypes = []TransactionType{
	Purchase,
	Settle,
	Charge,
	Complete3DS,
	Refund,
	CheckStatus,
	AccountToCard,
	CreateInvoice,
	AccountToPhone,
	TransactionList,
}

// TransactionTypes returns all known transaction types.
func TransactionTypes() []TransactionType {
	types := make([]TransactionType, len(transactionTypes))
	copy(types, transactionTypes)
	return types
}

// ParseTransactionType resolves a wire identifier; matching ignores case and
// accepts '-' in place of '_', so "check-status" resolves to CheckStatus.
func ParseTransactionType(s string) (TransactionType, bool) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for _, t := range transactionTypes {
		if string(t) == name {
			return t, true
		}
	}
	return TransactionType(name), false
}

func (t TransactionType) String() string {
	return string(t)
}
