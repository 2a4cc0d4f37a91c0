package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wayforpay/entity"
)

// fields masked before a request is logged or stored
var sensitiveFields = map[string]bool{
	"card":            true,
	"cardCvv":         true,
	"expMonth":        true,
	"expYear":         true,
	"cardHolder":      true,
	"recToken":        true,
	"rec2Token":       true,
	"cardBeneficiary": true,
}

// Query prepares fields as transactionType, posts them to the API endpoint
// and returns the decoded reply. There is no retry: on failure the caller
// prepares and sends again.
func (c *Client) Query(ctx context.Context, transactionType entity.TransactionType, input *entity.FieldMap) (entity.Response, error) {
	fields, err := c.Prepare(transactionType, input)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, transactionType, fields)
}

func (c *Client) Settle(ctx context.Context, fields *entity.FieldMap) (entity.Response, error) {
	return c.Query(ctx, entity.Settle, fields)
}

func (c *Client) Charge(ctx context.Context, fields *entity.FieldMap) (entity.Response, error) {
	return c.Query(ctx, entity.Charge, fields)
}

func (c *Client) Complete3DS(ctx context.Context, fields *entity.FieldMap) (entity.Response, error) {
	return c.Query(ctx, entity.Complete3DS, fields)
}

func (c *Client) Refund(ctx context.Context, fields *entity.FieldMap) (entity.Response, error) {
	return c.Query(ctx, entity.Refund, fields)
}

func (c *Client) CheckStatus(ctx context.Context, fields *entity.FieldMap) (entity.Response, error) {
	return c.Query(ctx, entity.CheckStatus, fields)
}

func (c *Client) AccountToCard(ctx context.Context, fields *entity.FieldMap) (entity.Response, error) {
	return c.Query(ctx, entity.AccountToCard, fields)
}

func (c *Client) CreateInvoice(ctx context.Context, fields *entity.FieldMap) (entity.Response, error) {
	return c.Query(ctx, entity.CreateInvoice, fields)
}

func (c *Client) AccountToPhone(ctx context.Context, fields *entity.FieldMap) (entity.Response, error) {
	return c.Query(ctx, entity.AccountToPhone, fields)
}

func (c *Client) TransactionList(ctx context.Context, fields *entity.FieldMap) (entity.Response, error) {
	return c.Query(ctx, entity.TransactionList, fields)
}

func (c *Client) send(ctx context.Context, transactionType entity.TransactionType, fields *entity.FieldMap) (entity.Response, error) {
	started := time.Now()
	requestData, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	masked := maskFields(fields)
	c.logger.Debug(fmt.Sprintf("[%s] %s request: %s", GetRequestID(ctx), transactionType, masked))

	response, err := c.post(ctx, requestData)
	if err != nil {
		c.logger.Error(fmt.Sprintf("[%s] %s %s", GetRequestID(ctx), transactionType, fields.Text(fieldOrderReference)), err)
	} else {
		c.logger.Info(fmt.Sprintf("[%s] %s %s: reason %d %s", GetRequestID(ctx), transactionType, fields.Text(fieldOrderReference), response.ReasonCode(), response.Reason()))
	}

	c.journal(ctx, &entity.Exchange{
		RequestId:       GetRequestID(ctx),
		TransactionType: string(transactionType),
		OrderReference:  fields.Text(fieldOrderReference),
		Request:         masked,
		Response:        response,
		Error:           errorText(err),
		Duration:        time.Since(started).Milliseconds(),
		Time:            started,
	})
	return response, err
}

func (c *Client) post(ctx context.Context, requestData []byte) (entity.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.API, bytes.NewReader(requestData))
	if err != nil {
		return nil, fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json;charset=utf-8")

	response, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request timeout or cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("post request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.logger.Error("close response body", err)
		}
	}(response.Body)

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	result, err := decodeResponse(body)
	if err != nil {
		return nil, fmt.Errorf("status %d: %w", response.StatusCode, err)
	}
	return result, nil
}

func decodeResponse(body []byte) (entity.Response, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var result entity.Response
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("decode response: empty body")
	}
	return result, nil
}

func (c *Client) journal(ctx context.Context, exchange *entity.Exchange) {
	if c.database == nil {
		return
	}
	// the exchange is stored even when the caller's context is done
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := c.database.SaveExchange(ctx, exchange); err != nil {
		c.logger.Error("save exchange", err)
	}
}

// maskFields returns the JSON form of fields with card data and tokens masked.
func maskFields(fields *entity.FieldMap) string {
	masked := fields.Clone()
	for _, name := range masked.Keys() {
		if sensitiveFields[name] {
			masked.Set(name, secret(masked.Text(name)))
		}
	}
	data, err := json.Marshal(masked)
	if err != nil {
		return ""
	}
	return string(data)
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}
