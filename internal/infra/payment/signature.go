package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"cardshop/internal/pkg/errs"
)

var (
	ErrMissingSignature = errs.New("missing signature header")
	ErrBadSignature     = errs.New("signature mismatch")
	ErrStaleSignature   = errs.New("signature timestamp outside tolerance")
)

// Verifier checks headers of the form "t=<unix>,v1=<hex>" where v1 is
// HMAC-SHA256 over "<t>.<payload>". Several v1 entries may be present
// during secret rotation; any match is accepted.
type Verifier struct {
	secret    []byte
	tolerance time.Duration
}

func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	return &Verifier{secret: []byte(secret), tolerance: tolerance}
}

func (v *Verifier) Verify(payload []byte, header string, now time.Time) error {
	if strings.TrimSpace(header) == "" {
		return ErrMissingSignature
	}

	var ts int64
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		k, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return errs.Mark(errs.Wrap(err, "invalid signature timestamp"), ErrBadSignature)
			}
			ts = n
		case "v1":
			candidates = append(candidates, val)
		}
	}
	if ts == 0 || len(candidates) == 0 {
		return ErrMissingSignature
	}

	signedAt := time.Unix(ts, 0)
	if v.tolerance > 0 && (now.Sub(signedAt) > v.tolerance || signedAt.Sub(now) > v.tolerance) {
		return ErrStaleSignature
	}

	expected := v.sign(ts, payload)
	for _, c := range candidates {
		got, err := hex.DecodeString(c)
		if err != nil {
			continue
		}
		if hmac.Equal(got, expected) {
			return nil
		}
	}
	return ErrBadSignature
}

// Sign builds a header value for payload; used by tests and local tooling.
func (v *Verifier) Sign(payload []byte, at time.Time) string {
	ts := at.Unix()
	return "t=" + strconv.FormatInt(ts, 10) + ",v1=" + hex.EncodeToString(v.sign(ts, payload))
}

func (v *Verifier) sign(ts int64, payload []byte) []byte {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}
