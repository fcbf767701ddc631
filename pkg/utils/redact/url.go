package redact

import (
	"errors"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
)

// URLError drops the request URL carried by a *url.Error in err. Webhook URLs
// embed their token, so the URL must not reach error messages that are logged.
// Errors without a *url.Error are returned as is.
func URLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return goerr.Wrap(urlErr.Err, "request failed", goerr.V("op", urlErr.Op))
}
