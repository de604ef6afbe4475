package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
)

const testSecret = "whsec_test"

var frozenNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testVerifier() *Verifier {
	v := NewVerifier(testSecret)
	v.now = func() time.Time { return frozenNow }
	return v
}

func sign(secret string, timestamp time.Time, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestConstructEventValidSignature(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "invoice.paid",
		"data": {"object": {"id": "in_test", "metadata": {"order_number": "HB-1001"}}}
	}`)

	event, err := testVerifier().ConstructEvent(payload, sign(testSecret, frozenNow, payload))
	require.NoError(t, err)

	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "invoice.paid", event.Type)
	assert.Equal(t, "in_test", event.InvoiceID)
	assert.Equal(t, "HB-1001", event.OrderNumber)
}

func TestConstructEventWrongSecret(t *testing.T) {
	payload := []byte(`{"id": "evt_1", "type": "invoice.paid"}`)

	_, err := testVerifier().ConstructEvent(payload, sign("whsec_other", frozenNow, payload))
	assert.ErrorIs(t, err, core.ErrBadSignature)
}

func TestConstructEventTamperedPayload(t *testing.T) {
	payload := []byte(`{"id": "evt_1", "type": "invoice.paid"}`)
	header := sign(testSecret, frozenNow, payload)

	tampered := []byte(`{"id": "evt_2", "type": "invoice.paid"}`)
	_, err := testVerifier().ConstructEvent(tampered, header)
	assert.ErrorIs(t, err, core.ErrBadSignature)
}

func TestConstructEventTimestampTolerance(t *testing.T) {
	payload := []byte(`{"id": "evt_1", "type": "invoice.paid"}`)

	tests := []struct {
		name   string
		signAt time.Time
		wantOK bool
	}{
		{name: "well within tolerance", signAt: frozenNow.Add(-time.Minute), wantOK: true},
		{name: "slightly in the future", signAt: frozenNow.Add(time.Minute), wantOK: true},
		{name: "too old", signAt: frozenNow.Add(-6 * time.Minute), wantOK: false},
		{name: "too far in the future", signAt: frozenNow.Add(6 * time.Minute), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testVerifier().ConstructEvent(payload, sign(testSecret, tt.signAt, payload))
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, core.ErrBadSignature)
			}
		})
	}
}

func TestConstructEventMalformedHeaders(t *testing.T) {
	payload := []byte(`{"id": "evt_1", "type": "invoice.paid"}`)

	tests := []struct {
		name   string
		header string
	}{
		{name: "empty header", header: ""},
		{name: "missing timestamp", header: "v1=deadbeef"},
		{name: "missing signature", header: fmt.Sprintf("t=%d", frozenNow.Unix())},
		{name: "garbage timestamp", header: "t=yesterday,v1=deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testVerifier().ConstructEvent(payload, tt.header)
			assert.ErrorIs(t, err, core.ErrBadSignature)
		})
	}
}

func TestConstructEventSecondSignatureAccepted(t *testing.T) {
	payload := []byte(`{"id": "evt_1", "type": "invoice.paid"}`)

	// Secret rotation sends the old and the new signature in one header.
	stale := sign("whsec_rotated_out", frozenNow, payload)
	good := sign(testSecret, frozenNow, payload)
	header := stale + ",v1=" + good[len(good)-64:]

	_, err := testVerifier().ConstructEvent(payload, header)
	assert.NoError(t, err)
}

func TestConstructEventMalformedBody(t *testing.T) {
	payload := []byte(`not json at all`)

	_, err := testVerifier().ConstructEvent(payload, sign(testSecret, frozenNow, payload))
	assert.ErrorIs(t, err, core.ErrBadSignature)
}
