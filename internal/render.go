package internal

import (
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"wayforpay/entity"
)

const defaultWidgetCallback = "receiveMessage"

var callbackName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

// BuildForm returns an HTML form posting a purchase to the payment page.
// List fields are sent as name[] inputs.
func (c *Client) BuildForm(input *entity.FieldMap) (string, error) {
	fields, err := c.Prepare(entity.Purchase, input)
	if err != nil {
		return "", err
	}

	var form strings.Builder
	fmt.Fprintf(&form, `<form method="POST" action="%s" accept-charset="utf-8">`, html.EscapeString(c.endpoints.Purchase))
	for _, name := range fields.Keys() {
		value, _ := fields.Get(name)
		inputName := name
		if value.IsList() {
			inputName += "[]"
		}
		for _, item := range value.Items() {
			fmt.Fprintf(&form, `<input type="hidden" name="%s" value="%s" />`, html.EscapeString(inputName), html.EscapeString(item))
		}
	}
	form.WriteString(`<input type="submit" value="Submit purchase form"></form>`)
	return form.String(), nil
}

// GeneratePurchaseURL returns a GET link to the payment page. Query keys keep
// field order; list fields are encoded as name[0], name[1], ...
func (c *Client) GeneratePurchaseURL(input *entity.FieldMap) (string, error) {
	fields, err := c.Prepare(entity.Purchase, input)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, fields.Len())
	for _, name := range fields.Keys() {
		value, _ := fields.Get(name)
		if !value.IsList() {
			parts = append(parts, url.QueryEscape(name)+"="+url.QueryEscape(value.Join(FieldsDelimiter)))
			continue
		}
		for i, item := range value.Items() {
			key := fmt.Sprintf("%s[%d]", name, i)
			parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(item))
		}
	}
	return c.endpoints.Purchase + "/get?" + strings.Join(parts, "&"), nil
}

// BuildWidgetButton returns the script and button that open the payment
// widget. callback names a JS function receiving widget events; "" uses a
// handler that logs them.
func (c *Client) BuildWidgetButton(input *entity.FieldMap, callback string) (string, error) {
	if callback == "" {
		callback = defaultWidgetCallback
	}
	if !callbackName.MatchString(callback) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCallback, callback)
	}
	fields, err := c.Prepare(entity.Purchase, input)
	if err != nil {
		return "", err
	}
	// json.Marshal escapes <, > and & so the literal cannot close the script
	params, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode widget fields: %w", err)
	}

	return fmt.Sprintf(`<script id="widget-wfp-script" language="javascript" type="text/javascript" src="%s"></script>
<script type="text/javascript">
    var wayforpay = new Wayforpay();
    var pay = function () {
        wayforpay.run(%s);
    }
    window.addEventListener("message", %s);
    function receiveMessage(event)
    {
        if(
            event.data == "WfpWidgetEventClose" ||
            event.data == "WfpWidgetEventApproved" ||
            event.data == "WfpWidgetEventDeclined" ||
            event.data == "WfpWidgetEventPending")
        {
            console.log(event.data);
        }
    }
</script>
<button type="button" onclick="pay();">Оплатить</button>`, html.EscapeString(c.endpoints.Widget), params, callback), nil
}
