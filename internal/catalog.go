package internal

import (
	"fmt"

	"wayforpay/entity"
)

var purchaseSignature = []string{
	"merchantAccount",
	"merchantDomainName",
	"orderReference",
	"orderDate",
	"amount",
	"currency",
	"productName",
	"productCount",
	"productPrice",
}

var chargeRequired = []string{
	"transactionType",
	"merchantAccount",
	"merchantDomainName",
	"orderReference",
	"apiVersion",
	"orderDate",
	"amount",
	"currency",
	"productName",
	"productCount",
	"productPrice",
	"clientFirstName",
	"clientLastName",
	"clientEmail",
	"clientPhone",
	"clientCountry",
	"clientIpAddress",
}

var cardFields = []string{"card", "expMonth", "expYear", "cardCvv", "cardHolder"}

type catalogEntry struct {
	signature []string
	// required resolves the required set against the fields built so far
	required func(fields *entity.FieldMap) []string
}

func fixed(names ...string) func(*entity.FieldMap) []string {
	return func(*entity.FieldMap) []string {
		return names
	}
}

// a stored card token replaces the card data
func chargeRequirements(fields *entity.FieldMap) []string {
	required := make([]string, 0, len(chargeRequired)+len(cardFields))
	required = append(required, chargeRequired...)
	if token, ok := fields.Get("recToken"); ok && !token.IsEmpty() {
		return append(required, "recToken")
	}
	return append(required, cardFields...)
}

var catalog = map[entity.TransactionType]catalogEntry{
	entity.Purchase: {
		signature: purchaseSignature,
		required: fixed(
			"merchantAccount",
			"merchantDomainName",
			"merchantTransactionSecureType",
			"orderReference",
			"orderDate",
			"amount",
			"currency",
			"productName",
			"productCount",
			"productPrice",
		),
	},
	entity.Settle: {
		signature: []string{"merchantAccount", "orderReference", "amount", "currency"},
		required: fixed(
			"transactionType",
			"merchantAccount",
			"orderReference",
			"amount",
			"currency",
			"apiVersion",
		),
	},
	entity.Charge: {
		signature: purchaseSignature,
		required:  chargeRequirements,
	},
	entity.Complete3DS: {
		signature: []string{"authorization_ticket", "d3ds_md", "d3ds_pares"},
		required: fixed(
			"authorization_ticket",
			"d3ds_md",
			"d3ds_pares",
			"transactionType",
			"apiVersion",
		),
	},
	entity.Refund: {
		signature: []string{"merchantAccount", "orderReference", "amount", "currency"},
		required: fixed(
			"transactionType",
			"merchantAccount",
			"orderReference",
			"amount",
			"currency",
			"comment",
			"apiVersion",
		),
	},
	entity.CheckStatus: {
		signature: []string{"merchantAccount", "orderReference"},
		required: fixed(
			"transactionType",
			"merchantAccount",
			"orderReference",
			"apiVersion",
		),
	},
	entity.AccountToCard: {
		signature: []string{"merchantAccount", "orderReference", "amount", "currency", "cardBeneficiary", "rec2Token"},
		required: fixed(
			"transactionType",
			"merchantAccount",
			"orderReference",
			"amount",
			"currency",
			"cardBeneficiary",
			"merchantSignature",
			"apiVersion",
		),
	},
	entity.CreateInvoice: {
		signature: purchaseSignature,
		required: fixed(
			"transactionType",
			"merchantAccount",
			"merchantDomainName",
			"orderReference",
			"amount",
			"currency",
			"productName",
			"productCount",
			"productPrice",
			"apiVersion",
		),
	},
	entity.AccountToPhone: {
		signature: []string{"merchantAccount", "orderReference", "amount", "currency", "phone"},
		required: fixed(
			"merchantAccount",
			"orderReference",
			"orderDate",
			"currency",
			"amount",
			"phone",
			"transactionType",
			"apiVersion",
		),
	},
	entity.TransactionList: {
		signature: []string{"merchantAccount", "dateBegin", "dateEnd"},
		required: fixed(
			"merchantAccount",
			"dateBegin",
			"dateEnd",
			"transactionType",
			"apiVersion",
		),
	},
}

func lookup(transactionType entity.TransactionType) (catalogEntry, error) {
	entry, ok := catalog[transactionType]
	if !ok {
		return catalogEntry{}, fmt.Errorf("%w: %s", ErrUnknownTransactionType, transactionType)
	}
	return entry, nil
}

// SignatureFields returns the ordered names signed for transactionType.
func SignatureFields(transactionType entity.TransactionType) ([]string, error) {
	entry, err := lookup(transactionType)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), entry.signature...), nil
}

// RequiredFields returns the names that must be present and non-empty in
// fields before they are sent.
func RequiredFields(transactionType entity.TransactionType, fields *entity.FieldMap) ([]string, error) {
	entry, err := lookup(transactionType)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), entry.required(fields)...), nil
}
