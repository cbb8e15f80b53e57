package gateway

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog"
)

// debugTransport dumps each request/response pair to the logger. Dumps
// include headers and full bodies (bearer tokens included), so this is
// strictly a development aid — never enable it in production.
//
// Activation: set ASSISTANT_DEBUG=true or DEBUG=true, or pass
// WithDebugLogging(true) explicitly.
type debugTransport struct {
	base http.RoundTripper
	log  zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		dt.log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested checks if HTTP debug logging should be enabled.
// ASSISTANT_DEBUG targets this client specifically; DEBUG is the broader
// development flag. Both must be exactly "true".
func debugLoggingRequested() bool {
	return os.Getenv("ASSISTANT_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
