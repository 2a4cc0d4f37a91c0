package internal

import (
	"errors"
	"strings"
	"testing"

	"wayforpay/entity"
)

func TestBuildForm(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	input := validInput(entity.Purchase).Set("returnUrl", `https://shop.ua/?a=1&b="2"`)
	form, err := client.BuildForm(input)
	if err != nil {
		t.Fatalf("BuildForm failed: %v", err)
	}

	for _, want := range []string{
		`<form method="POST" action="https://secure.wayforpay.com/pay" accept-charset="utf-8">`,
		`<input type="hidden" name="productName[]" value="Saturn BUE 1.2" />`,
		`<input type="hidden" name="productName[]" value="Cable" />`,
		`<input type="hidden" name="orderDate" value="1430373125" />`,
		`<input type="hidden" name="returnUrl" value="https://shop.ua/?a=1&amp;b=&#34;2&#34;" />`,
		`<input type="hidden" name="transactionType" value="PURCHASE" />`,
		`<input type="submit" value="Submit purchase form"></form>`,
	} {
		if !strings.Contains(form, want) {
			t.Errorf("Form does not contain %s", want)
		}
	}
	if strings.Contains(form, "apiVersion") {
		t.Error("Purchase form must not carry apiVersion")
	}
}

func TestBuildFormValidates(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	input := validInput(entity.Purchase)
	input.Delete("merchantTransactionSecureType")
	if _, err := client.BuildForm(input); !errors.Is(err, ErrMissingRequiredFields) {
		t.Errorf("Expected ErrMissingRequiredFields, got %v", err)
	}
}

func TestGeneratePurchaseURL(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	input := entity.NewFieldMap().
		Set("merchantDomainName", "domain.ua").
		Set("merchantTransactionSecureType", "AUTO").
		Set("orderReference", "RG3656-1430373125").
		Set("orderDate", 1430373125).
		Set("amount", 0.16).
		Set("currency", "UAH").
		Set("productName", []string{"Saturn BUE 1.2"}).
		Set("productCount", []int{1}).
		Set("productPrice", []float64{0.16}).
		Set("language", "RU")

	link, err := client.GeneratePurchaseURL(input)
	if err != nil {
		t.Fatalf("GeneratePurchaseURL failed: %v", err)
	}
	want := "https://secure.wayforpay.com/pay/get?merchantDomainName=domain.ua&merchantTransactionSecureType=AUTO" +
		"&orderReference=RG3656-1430373125&orderDate=1430373125&amount=0.16&currency=UAH" +
		"&productName%5B0%5D=Saturn+BUE+1.2&productCount%5B0%5D=1&productPrice%5B0%5D=0.16&language=RU" +
		"&transactionType=PURCHASE&merchantAccount=test_merch_n1&merchantSignature=8b5e23b892778fbdf6b7acd6bb364664"
	if link != want {
		t.Errorf("Unexpected url\n got: %s\nwant: %s", link, want)
	}
}

func TestBuildWidgetButton(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	input := validInput(entity.Purchase).Set("clientFirstName", "</script><script>alert(1)</script>")
	button, err := client.BuildWidgetButton(input, "")
	if err != nil {
		t.Fatalf("BuildWidgetButton failed: %v", err)
	}
	if !strings.Contains(button, `src="https://secure.wayforpay.com/server/pay-widget.js"`) {
		t.Error("Widget script source missing")
	}
	if !strings.Contains(button, `window.addEventListener("message", receiveMessage);`) {
		t.Error("Default callback missing")
	}
	if !strings.Contains(button, `wayforpay.run({"merchantDomainName":"domain.ua"`) {
		t.Error("Fields literal missing or out of order")
	}
	if strings.Contains(button, "</script><script>alert") {
		t.Error("Field value breaks out of the script element")
	}

	custom, err := client.BuildWidgetButton(validInput(entity.Purchase), "shop.onWidgetEvent")
	if err != nil {
		t.Fatalf("BuildWidgetButton failed: %v", err)
	}
	if !strings.Contains(custom, `window.addEventListener("message", shop.onWidgetEvent);`) {
		t.Error("Custom callback missing")
	}
}

func TestBuildWidgetButtonRejectsCallback(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	_, err := client.BuildWidgetButton(validInput(entity.Purchase), "alert(1)")
	if !errors.Is(err, ErrInvalidCallback) {
		t.Errorf("Expected ErrInvalidCallback, got %v", err)
	}
}
