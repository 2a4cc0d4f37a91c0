package internal

import (
	"wayforpay/entity"
)

// Prepare returns a signed copy of input ready to send as transactionType.
// The signature is taken over caller fields plus merchantAccount, before
// apiVersion is added; required fields are checked last so derived fields
// count. Every missing field is reported at once.
func (c *Client) Prepare(transactionType entity.TransactionType, input *entity.FieldMap) (*entity.FieldMap, error) {
	if input.Len() == 0 {
		return nil, ErrEmptyInput
	}
	if _, err := lookup(transactionType); err != nil {
		return nil, err
	}

	fields := input.Clone()
	fields.Set(fieldTransactionType, string(transactionType))
	fields.Set(fieldMerchantAccount, c.credentials.Account)

	signature, err := c.signer.CreateSignature(transactionType, fields)
	if err != nil {
		return nil, err
	}
	fields.Set(fieldMerchantSignature, signature)

	if transactionType != entity.Purchase {
		fields.Set(fieldAPIVersion, APIVersion)
	}

	if err = checkRequired(transactionType, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// BuildSignature returns merchantSignature for a valid request.
func (c *Client) BuildSignature(transactionType entity.TransactionType, input *entity.FieldMap) (string, error) {
	fields, err := c.Prepare(transactionType, input)
	if err != nil {
		return "", err
	}
	return fields.Text(fieldMerchantSignature), nil
}

func checkRequired(transactionType entity.TransactionType, fields *entity.FieldMap) error {
	required, err := RequiredFields(transactionType, fields)
	if err != nil {
		return err
	}
	var missing []string
	for _, name := range required {
		value, ok := fields.Get(name)
		if !ok || value.IsEmpty() {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &FieldsError{Kind: ErrMissingRequiredFields, Fields: missing}
	}
	return nil
}
