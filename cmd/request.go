package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"wayforpay/internal"
)

var (
	fieldsPath     string
	widgetCallback string
)

var signCmd = &cobra.Command{
	Use:   "sign <type>",
	Short: "Print merchantSignature for a request",
	Long:  "Print merchantSignature for a request. Types: " + strings.Join(transactionTypeNames(), ", "),
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(cmd *cobra.Command, args []string, client *internal.Client) error {
		transactionType, err := parseType(args[0])
		if err != nil {
			return err
		}
		fields, err := readFields(fieldsPath, cmd.InOrStdin())
		if err != nil {
			return err
		}
		signature, err := client.BuildSignature(transactionType, fields)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), signature)
		return err
	}),
}

var prepareCmd = &cobra.Command{
	Use:   "prepare <type>",
	Short: "Print the signed request without sending it",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(cmd *cobra.Command, args []string, client *internal.Client) error {
		transactionType, err := parseType(args[0])
		if err != nil {
			return err
		}
		fields, err := readFields(fieldsPath, cmd.InOrStdin())
		if err != nil {
			return err
		}
		prepared, err := client.Prepare(transactionType, fields)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), prepared)
	}),
}

var queryCmd = &cobra.Command{
	Use:   "query <type>",
	Short: "Send a request to the API and print the response",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(cmd *cobra.Command, args []string, client *internal.Client) error {
		transactionType, err := parseType(args[0])
		if err != nil {
			return err
		}
		fields, err := readFields(fieldsPath, cmd.InOrStdin())
		if err != nil {
			return err
		}
		ctx := internal.WithRequestID(cmd.Context())
		response, err := client.Query(ctx, transactionType, fields)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), response)
	}),
}

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Render the HTML purchase form",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, client *internal.Client) error {
		fields, err := readFields(fieldsPath, cmd.InOrStdin())
		if err != nil {
			return err
		}
		form, err := client.BuildForm(fields)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), form)
		return err
	}),
}

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the purchase page link",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, client *internal.Client) error {
		fields, err := readFields(fieldsPath, cmd.InOrStdin())
		if err != nil {
			return err
		}
		link, err := client.GeneratePurchaseURL(fields)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), link)
		return err
	}),
}

var widgetCmd = &cobra.Command{
	Use:   "widget",
	Short: "Render the payment widget snippet",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, client *internal.Client) error {
		fields, err := readFields(fieldsPath, cmd.InOrStdin())
		if err != nil {
			return err
		}
		button, err := client.BuildWidgetButton(fields, widgetCallback)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), button)
		return err
	}),
}

func withClient(run func(cmd *cobra.Command, args []string, client *internal.Client) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(conf)
		if err != nil {
			return err
		}
		return run(cmd, args, client)
	}
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

func init() {
	for _, c := range []*cobra.Command{signCmd, prepareCmd, queryCmd, formCmd, urlCmd, widgetCmd} {
		c.Flags().StringVarP(&fieldsPath, "fields", "f", "-", "JSON or YAML file with request fields; - reads stdin")
		rootCmd.AddCommand(c)
	}
	widgetCmd.Flags().StringVar(&widgetCallback, "callback", "", "JS function receiving widget events")
}
