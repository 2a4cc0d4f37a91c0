package internal

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wayforpay/config"
	"wayforpay/entity"
)

func newTestServer(t *testing.T, gatewayHandler http.HandlerFunc) (*httptest.Server, *memoryDatabase) {
	t.Helper()
	if gatewayHandler == nil {
		gatewayHandler = func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"reasonCode":1100,"reason":"Ok"}`)
		}
	}
	client, database := newGatewayClient(t, gatewayHandler)

	server := NewServer(&config.Config{})
	server.SetGateway(client)
	server.SetDatabase(database)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts, database
}

func postFields(t *testing.T, url string, fields *entity.FieldMap) *http.Response {
	t.Helper()
	body, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("encode fields: %v", err)
	}
	resp, err := http.Post(url, "application/json", strings.NewReader(string(body)))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestServerSignature(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, nil)

	input := purchaseSample().Set("merchantTransactionSecureType", "AUTO")
	resp := postFields(t, ts.URL+"/signature/purchase", input)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["merchantSignature"] != "8b5e23b892778fbdf6b7acd6bb364664" {
		t.Errorf("Unexpected signature %v", body["merchantSignature"])
	}
}

func TestServerPrepareKeepsOrder(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, nil)

	resp := postFields(t, ts.URL+"/prepare/check_status", validInput(entity.CheckStatus))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	fields := entity.NewFieldMap()
	if err := json.Unmarshal(data, fields); err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	want := []string{"orderReference", "transactionType", "merchantAccount", "merchantSignature", "apiVersion"}
	got := fields.Keys()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Expected keys %v, got %v", want, got)
	}
}

func TestServerMissingFields(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, nil)

	input := validInput(entity.Refund)
	input.Delete("comment")
	resp := postFields(t, ts.URL+"/api/REFUND", input)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	fields, _ := body["fields"].([]any)
	if len(fields) != 1 || fields[0] != "comment" {
		t.Errorf("Expected fields [comment], got %v", body["fields"])
	}
}

func TestServerUnknownType(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, nil)

	resp := postFields(t, ts.URL+"/api/void", validInput(entity.Settle))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

func TestServerBadBody(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/prepare/settle", "application/json", strings.NewReader(`["a"]`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestServerQueryAndJournal(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, nil)

	resp := postFields(t, ts.URL+"/api/settle", validInput(entity.Settle))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["reason"] != "Ok" {
		t.Errorf("Unexpected response %v", body)
	}

	journal, err := http.Get(ts.URL + "/exchanges/RG3656-1430373125")
	if err != nil {
		t.Fatalf("get exchanges: %v", err)
	}
	defer journal.Body.Close()
	var exchanges []entity.Exchange
	if err = json.NewDecoder(journal.Body).Decode(&exchanges); err != nil {
		t.Fatalf("decode exchanges: %v", err)
	}
	if len(exchanges) != 1 || exchanges[0].TransactionType != "SETTLE" {
		t.Errorf("Unexpected exchanges %+v", exchanges)
	}
	if exchanges[0].RequestId == "" {
		t.Error("Expected request id in journal")
	}
}

func TestServerGatewayFailure(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	})

	resp := postFields(t, ts.URL+"/api/settle", validInput(entity.Settle))
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", resp.StatusCode)
	}
}

func TestServerPurchaseRendering(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, nil)

	form := postFields(t, ts.URL+"/purchase/form", validInput(entity.Purchase))
	if form.StatusCode != http.StatusOK || !strings.HasPrefix(form.Header.Get("Content-Type"), "text/html") {
		t.Errorf("Unexpected form response %d %s", form.StatusCode, form.Header.Get("Content-Type"))
	}

	link := postFields(t, ts.URL+"/purchase/url", validInput(entity.Purchase))
	body := decodeBody(t, link)
	if url, _ := body["url"].(string); !strings.HasPrefix(url, PurchaseURL+"/get?") {
		t.Errorf("Unexpected url %v", body["url"])
	}

	widget := postFields(t, ts.URL+"/purchase/widget?callback=alert(1)", validInput(entity.Purchase))
	if widget.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid callback, got %d", widget.StatusCode)
	}
}
