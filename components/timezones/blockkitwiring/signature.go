package blockkitwiring

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goliatone/go-blockkit/components/timezones"
)

// Request signing headers sent with every interactive payload.
const (
	HeaderTimestamp = "X-Slack-Request-Timestamp"
	HeaderSignature = "X-Slack-Signature"

	signatureVersion = "v0"
	maxClockSkew     = 5 * time.Minute
	maxSignedBody    = 1 << 20
)

var (
	ErrMissingSignature = errors.New("blockkitwiring: missing request signature")
	ErrStaleRequest     = errors.New("blockkitwiring: request timestamp outside the allowed window")
	ErrBadSignature     = errors.New("blockkitwiring: request signature mismatch")
)

// Sign returns the v0 signature of body sent at ts.
func Sign(secret string, ts time.Time, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s:%d:", signatureVersion, ts.Unix())
	mac.Write(body)
	return signatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature returns a guard that checks the request signature against
// secret. Requests older or newer than five minutes are rejected. The body is
// restored so the query function can parse the form afterwards. now defaults
// to time.Now.
func VerifySignature(secret string, now func() time.Time) timezones.GuardFunc {
	if now == nil {
		now = time.Now
	}
	return func(r *http.Request) error {
		rawTS, sig := r.Header.Get(HeaderTimestamp), r.Header.Get(HeaderSignature)
		if rawTS == "" || sig == "" {
			return timezones.StatusError{Code: http.StatusUnauthorized, Err: ErrMissingSignature}
		}
		unix, err := strconv.ParseInt(rawTS, 10, 64)
		if err != nil {
			return timezones.StatusError{Code: http.StatusUnauthorized, Err: fmt.Errorf("%w: %q", ErrStaleRequest, rawTS)}
		}
		ts := time.Unix(unix, 0)
		if skew := now().Sub(ts); skew > maxClockSkew || skew < -maxClockSkew {
			return timezones.StatusError{Code: http.StatusUnauthorized, Err: ErrStaleRequest}
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxSignedBody))
		if err != nil {
			return timezones.StatusError{Code: http.StatusBadRequest, Err: err}
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !hmac.Equal([]byte(Sign(secret, ts, body)), []byte(sig)) {
			return timezones.StatusError{Code: http.StatusUnauthorized, Err: ErrBadSignature}
		}
		return nil
	}
}
