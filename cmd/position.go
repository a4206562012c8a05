package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"lendvault/pkg/id"
	"lendvault/pkg/resthttp"

	"github.com/fox-one/pkg/qrcode"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// position commands call a running api server as the token's holder
var positionCmd = &cobra.Command{
	Use:     "position",
	Aliases: []string{"p"},
	Short:   "operate positions through the api",
}

func provideAPIClient(cmd *cobra.Command) *resthttp.Client {
	host, _ := cmd.Flags().GetString("api")
	token, _ := cmd.Flags().GetString("token")
	return resthttp.New(host, token)
}

func call(cmd *cobra.Command, method, uri string, body interface{}) {
	client := provideAPIClient(cmd)

	var resp json.RawMessage
	request := client.WithRequestID(cmd.Context(), id.GenUUIDString())
	if err := client.Execute(request, method, uri, body, &resp); err != nil {
		cmd.PrintErrln(method, uri, err)
		return
	}

	printJSON(cmd, resp)
}

type positionFlags struct {
	identity string
	traceID  string
	target   string
	tier     uint8
}

func readPositionFlags(cmd *cobra.Command) positionFlags {
	var f positionFlags
	f.identity, _ = cmd.Flags().GetString("identity")
	f.traceID, _ = cmd.Flags().GetString("trace")
	f.target, _ = cmd.Flags().GetString("target")
	f.tier, _ = cmd.Flags().GetUint8("tier")
	if f.traceID == "" {
		f.traceID = id.GenTraceID()
	}

	return f
}

// amountCommand position operation taking an asset amount
func amountCommand(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <vault id> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			vaultID := vaultArg(args)
			f := readPositionFlags(cmd)

			call(cmd, http.MethodPost, fmt.Sprintf("/vaults/%d/%s", vaultID, action), map[string]interface{}{
				"identity": f.identity,
				"amount":   args[1],
				"tier":     f.tier,
				"trace_id": f.traceID,
			})
		},
	}
}

// sharesCommand position operation taking a share count
func sharesCommand(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <vault id> <shares>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			vaultID := vaultArg(args)
			shares := cast.ToUint64(args[1])
			if shares == 0 {
				panic("invalid shares")
			}

			f := readPositionFlags(cmd)
			body := map[string]interface{}{
				"identity": f.identity,
				"shares":   shares,
				"trace_id": f.traceID,
			}

			if action == "transfer-position" {
				if f.target == "" {
					panic("target required")
				}

				body["target"] = f.target
			}

			call(cmd, http.MethodPost, fmt.Sprintf("/vaults/%d/%s", vaultID, action), body)
		},
	}
}

var positionInfoCmd = &cobra.Command{
	Use:   "info <vault id> <identity>",
	Short: "show a position",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		vaultID := vaultArg(args)
		call(cmd, http.MethodGet, fmt.Sprintf("/vaults/%d/positions/%s", vaultID, args[1]), nil)
	},
}

var positionPreviewLockCmd = &cobra.Command{
	Use:   "preview-lock <vault id> <amount>",
	Short: "quote a lock",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		vaultID := vaultArg(args)
		f := readPositionFlags(cmd)

		call(cmd, http.MethodPost, fmt.Sprintf("/vaults/%d/preview-lock", vaultID), map[string]interface{}{
			"identity": f.identity,
			"amount":   args[1],
			"tier":     f.tier,
		})
	},
}

// payCmd requests a payment url for the inbound leg of a deposit, lock or
// repay; pass the same trace to the operation afterwards
var payCmd = &cobra.Command{
	Use:   "pay <vault id> <amount>",
	Short: "print the payment url funding an operation",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		vaultID := vaultArg(args)
		f := readPositionFlags(cmd)

		value := cast.ToUint64(args[1])
		if value == 0 {
			panic("invalid amount, base units expected")
		}

		client := provideAPIClient(cmd)

		var resp struct {
			URL     string `json:"url"`
			TraceID string `json:"trace_id"`
		}

		request := client.Request(cmd.Context())
		if err := client.Execute(request, http.MethodPost, "/pay-requests", map[string]interface{}{
			"vault_id": vaultID,
			"amount":   value,
			"trace_id": f.traceID,
		}, &resp); err != nil {
			cmd.PrintErrln("pay request", err)
			return
		}

		cmd.Println("trace", resp.TraceID)
		cmd.Println(resp.URL)
		qrcode.Fprint(cmd.OutOrStdout(), resp.URL)
	},
}

func init() {
	rootCmd.AddCommand(positionCmd)

	flags := positionCmd.PersistentFlags()
	flags.String("api", "http://localhost:9000/api", "api endpoint")
	flags.String("token", "", "access token of the holder")
	flags.String("identity", "", "position identity, defaults to the holder")
	flags.String("trace", "", "trace id, reuse it to retry safely")
	flags.String("target", "", "receiving identity of transfer")
	flags.Uint8("tier", 0, "lock tier, 1 short, 2 long, 3 very long")

	positionCmd.AddCommand(
		amountCommand("deposit", "deposit assets for shares"),
		amountCommand("lock", "deposit assets under a lock tier"),
		amountCommand("borrow", "borrow as the pool"),
		amountCommand("repay", "repay as the pool"),
		sharesCommand("withdraw", "redeem unlocked shares"),
		sharesCommand("withdraw-early", "redeem locked shares with a penalty"),
		sharesCommand("transfer-position", "move shares to another identity"),
		positionInfoCmd,
		positionPreviewLockCmd,
		payCmd,
	)
}
