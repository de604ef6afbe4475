package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
)

const signatureTolerance = 5 * time.Minute

// Verifier checks webhook deliveries against the shared endpoint secret.
// The signature header carries a unix timestamp and one or more HMAC-SHA256
// signatures over "<timestamp>.<raw body>"; any verification gap fails closed.
type Verifier struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret:    secret,
		tolerance: signatureTolerance,
		now:       time.Now,
	}
}

type eventJSON struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// ConstructEvent verifies the delivery and parses it into a BillingEvent. The
// raw body must be exactly as received: re-serialized JSON breaks the HMAC.
func (v *Verifier) ConstructEvent(payload []byte, sigHeader string) (models.BillingEvent, error) {
	if err := v.verify(payload, sigHeader); err != nil {
		return models.BillingEvent{}, err
	}

	var ev eventJSON
	if err := json.Unmarshal(payload, &ev); err != nil {
		return models.BillingEvent{}, fmt.Errorf("%w: malformed event payload", core.ErrBadSignature)
	}

	event := models.BillingEvent{
		ID:   ev.ID,
		Type: ev.Type,
	}
	if len(ev.Data.Object) > 0 {
		var inv invoiceJSON
		if err := json.Unmarshal(ev.Data.Object, &inv); err == nil {
			event.InvoiceID = inv.ID
			event.Metadata = inv.Metadata
			event.OrderNumber = inv.Metadata["order_number"]
		}
	}
	return event, nil
}

func (v *Verifier) verify(payload []byte, sigHeader string) error {
	if sigHeader == "" {
		return fmt.Errorf("%w: missing signature header", core.ErrBadSignature)
	}

	var timestamp int64 = -1
	var signatures [][]byte
	for _, part := range strings.Split(sigHeader, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: unparsable timestamp", core.ErrBadSignature)
			}
			timestamp = ts
		case "v1":
			sig, err := hex.DecodeString(kv[1])
			if err != nil {
				continue
			}
			signatures = append(signatures, sig)
		}
	}

	if timestamp < 0 {
		return fmt.Errorf("%w: no timestamp in header", core.ErrBadSignature)
	}
	if len(signatures) == 0 {
		return fmt.Errorf("%w: no v1 signature in header", core.ErrBadSignature)
	}

	age := v.now().Sub(time.Unix(timestamp, 0))
	if age > v.tolerance || age < -v.tolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", core.ErrBadSignature)
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range signatures {
		if hmac.Equal(expected, sig) {
			return nil
		}
	}
	return fmt.Errorf("%w: no matching signature", core.ErrBadSignature)
}
