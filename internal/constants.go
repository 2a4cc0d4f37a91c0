package internal

const (
	PurchaseURL     = "https://secure.wayforpay.com/pay"
	APIURL          = "https://api.wayforpay.com/api"
	WidgetURL       = "https://secure.wayforpay.com/server/pay-widget.js"
	FieldsDelimiter = ";"
	APIVersion      = 1
	DefaultCharset  = "utf8"
)

// fields set by the client itself
const (
	fieldTransactionType   = "transactionType"
	fieldMerchantAccount   = "merchantAccount"
	fieldMerchantSignature = "merchantSignature"
	fieldAPIVersion        = "apiVersion"
	fieldOrderReference    = "orderReference"
)
