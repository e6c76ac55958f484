//go:build unit

package payment

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerifier_Verify(t *testing.T) {
	v := NewVerifier("whsec_test", 5*time.Minute)
	now := time.Unix(1_760_000_000, 0)
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	valid := v.Sign(payload, now)

	tests := []struct {
		name    string
		payload []byte
		header  string
		now     time.Time
		wantErr error
	}{
		{name: "valid", payload: payload, header: valid, now: now},
		{name: "valid within tolerance", payload: payload, header: valid, now: now.Add(4 * time.Minute)},
		{name: "rotated secret entry", payload: payload, header: valid + ",v1=deadbeef", now: now},
		{name: "empty header", payload: payload, header: "", now: now, wantErr: ErrMissingSignature},
		{name: "no v1", payload: payload, header: "t=" + strconv.FormatInt(now.Unix(), 10), now: now, wantErr: ErrMissingSignature},
		{name: "tampered payload", payload: []byte(`{"id":"evt_2"}`), header: valid, now: now, wantErr: ErrBadSignature},
		{name: "wrong secret", payload: payload, header: NewVerifier("other", 0).Sign(payload, now), now: now, wantErr: ErrBadSignature},
		{name: "stale", payload: payload, header: valid, now: now.Add(6 * time.Minute), wantErr: ErrStaleSignature},
		{name: "from the future", payload: payload, header: valid, now: now.Add(-6 * time.Minute), wantErr: ErrStaleSignature},
		{name: "non hex", payload: payload, header: "t=" + strconv.FormatInt(now.Unix(), 10) + ",v1=zz", now: now, wantErr: ErrBadSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(tt.payload, tt.header, tt.now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
