// ABOUTME: HMAC signing codec for webhook envelopes
// ABOUTME: signing string is "{timestamp}.{nonce}.{body_b64}", signature is base64 HMAC-SHA256
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Header names carried alongside a signed body.
const (
	HeaderTimestamp = "X-Timestamp"
	HeaderNonce     = "X-Nonce"
	HeaderSignature = "X-Signature"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// SignedPayload is the wire form of a signed envelope: the JSON body goes
// out as {body_b64}, the rest travels in headers.
type SignedPayload struct {
	BodyB64   string `json:"body_b64"`
	Timestamp int64  `json:"-"`
	Nonce     string `json:"-"`
	Signature string `json:"-"`
}

// SignPayload encodes payload as base64 JSON and signs it. The nonce is a
// fresh UUID per call; reuse would open the door to replay.
func SignPayload(secret string, payload any) (*SignedPayload, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	bodyB64 := base64.StdEncoding.EncodeToString(body)
	timestamp := time.Now().Unix()
	nonce := uuid.NewString()
	signature := hmacBase64(secret, signingString(fmt.Sprintf("%d", timestamp), nonce, bodyB64))
	return &SignedPayload{
		BodyB64:   bodyB64,
		Timestamp: timestamp,
		Nonce:     nonce,
		Signature: signature,
	}, nil
}

// VerifySignedResponse recomputes the HMAC over the same signing string
// and returns the decoded JSON payload on an exact match. No freshness
// window is enforced here; that is the backend's call.
func VerifySignedResponse(secret, bodyB64, timestamp, nonce, signature string) (json.RawMessage, error) {
	expected := hmacBase64(secret, signingString(timestamp, nonce, bodyB64))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, ErrInvalidSignature
	}
	body, err := base64.StdEncoding.DecodeString(bodyB64)
	if err != nil {
		return nil, fmt.Errorf("signed body is not base64: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("signed body is not valid JSON")
	}
	return json.RawMessage(body), nil
}

func signingString(timestamp, nonce, bodyB64 string) string {
	return timestamp + "." + nonce + "." + bodyB64
}

func hmacBase64(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
