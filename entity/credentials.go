package entity

// Credentials identify the merchant; both values are required.
type Credentials struct {
	Account  string `json:"merchant_account"`
	Password string `json:"-"`
}
