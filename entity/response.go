package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Response is the decoded gateway reply. The client does not interpret it;
// the accessors below only read common fields.
type Response map[string]any

// ReasonCode returns the numeric gateway reason code, 0 when absent.
func (r Response) ReasonCode() int {
	switch v := r["reasonCode"].(type) {
	case json.Number:
		code, _ := strconv.Atoi(v.String())
		return code
	case float64:
		return int(v)
	case string:
		code, _ := strconv.Atoi(v)
		return code
	}
	return 0
}

func (r Response) Reason() string {
	return r.text("reason")
}

func (r Response) TransactionStatus() string {
	return r.text("transactionStatus")
}

func (r Response) text(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
