package report

import (
	"fmt"
	"io"

	"github.com/example/sms-smoke/internal/config"
	"github.com/example/sms-smoke/internal/notifier"
	"github.com/example/sms-smoke/internal/util"
)

// maskedPrefix is how many leading characters of a secret-bearing value are shown.
const maskedPrefix = 10

// Printer writes the human readable report. Successes go to out, failures to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// NewPrinter returns a Printer over the given writers.
func NewPrinter(out, errOut io.Writer) *Printer {
	if errOut == nil {
		errOut = out
	}
	return &Printer{out: out, errOut: errOut}
}

// Config echoes the configuration with the account SID and API key masked.
// The auth secret is never printed.
func (p *Printer) Config(cfg config.TwilioConfig) {
	fmt.Fprintln(p.out, "Twilio Test Configuration:")
	fmt.Fprintf(p.out, "Account SID: %s\n", util.MaskPrefix(cfg.AccountSID, maskedPrefix))
	fmt.Fprintf(p.out, "API Key: %s\n", util.MaskPrefix(cfg.APIKey, maskedPrefix))
	fmt.Fprintf(p.out, "From: %s\n", orUnset(cfg.FromNumber))
	fmt.Fprintf(p.out, "To: %s\n", orUnset(cfg.ToNumber))
}

// Result prints the outcome block for r.
func (p *Printer) Result(r notifier.Result) {
	switch v := r.(type) {
	case notifier.Sent:
		fmt.Fprintln(p.out, "\nSMS sent successfully!")
		fmt.Fprintf(p.out, "Message SID: %s\n", v.ID)
		fmt.Fprintf(p.out, "Status: %s\n", v.Status)
	case notifier.Failed:
		fmt.Fprintln(p.errOut, "\nFailed to send SMS")
		fmt.Fprintf(p.errOut, "Status: %d\n", v.HTTPStatus)
		fmt.Fprintf(p.errOut, "Response: %s\n", v.Body)
	case notifier.TransportError:
		fmt.Fprintf(p.errOut, "Problem with request: %s\n", v.Message)
	default:
		fmt.Fprintf(p.errOut, "Unexpected result: %v\n", r)
	}
}

func orUnset(v string) string {
	if v == "" {
		return util.Unset
	}
	return v
}
