package internal

import (
	"fmt"
	"strings"

	"github.com/golang-module/dongle"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"

	"wayforpay/entity"
)

// Signer computes merchantSignature: HMAC-MD5 over the signature fields of a
// transaction type, joined with ';' in catalog order.
type Signer struct {
	secret  string // merchant password
	charset string // charset of field values
}

func NewSigner(secret string, charset string) *Signer {
	if charset == "" {
		charset = DefaultCharset
	}
	return &Signer{
		secret:  secret,
		charset: charset,
	}
}

// CreateSignature returns the lowercase hex digest for fields.
func (s *Signer) CreateSignature(transactionType entity.TransactionType, fields *entity.FieldMap) (string, error) {
	names, err := SignatureFields(transactionType)
	if err != nil {
		return "", err
	}

	data := make([]string, 0, len(names))
	var missing []string
	for _, name := range names {
		value, ok := fields.Get(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		data = append(data, value.Join(FieldsDelimiter))
	}
	if len(missing) > 0 {
		return "", &FieldsError{Kind: ErrMissingSignatureFields, Fields: missing}
	}

	data, err = s.toUTF8(data)
	if err != nil {
		return "", err
	}

	return s.macMD5(strings.Join(data, FieldsDelimiter)), nil
}

func (s *Signer) toUTF8(data []string) ([]string, error) {
	if isDefaultCharset(s.charset) {
		return data, nil
	}
	enc, err := lookupEncoding(s.charset)
	if err != nil {
		return nil, err
	}
	decoder := enc.NewDecoder()
	converted := make([]string, len(data))
	for i, piece := range data {
		converted[i], err = decoder.String(piece)
		if err != nil {
			return nil, fmt.Errorf("%w: transcode from %s: %v", ErrEncodingUnsupported, s.charset, err)
		}
	}
	return converted, nil
}

func (s *Signer) macMD5(message string) string {
	return dongle.Encrypt.FromString(message).ByHmacMd5(s.secret).ToHexString()
}

func isDefaultCharset(charset string) bool {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf8", "utf-8":
		return true
	}
	return false
}

// lookupEncoding accepts WHATWG labels ("cp1251", "koi8-r") and IANA names.
func lookupEncoding(charset string) (encoding.Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrEncodingUnsupported, charset)
}
