package webhook

import (
	"net/http"

	svix "github.com/svix/svix-webhooks/go"
)

// Header names the identity provider signs every delivery with. All three
// must be present before the body is even parsed.
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

// Verifier checks the signature of an inbound webhook delivery against the
// raw body and the signature headers.
type Verifier interface {
	Verify(payload []byte, headers http.Header) error
}

type svixVerifier struct {
	wh *svix.Webhook
}

// NewSvixVerifier builds a Verifier from the signing secret shared with the
// identity provider. Fails when the secret is malformed, so a bad secret is
// a startup error rather than a per-request one.
func NewSvixVerifier(secret string) (Verifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, err
	}
	return &svixVerifier{wh: wh}, nil
}

func (v *svixVerifier) Verify(payload []byte, headers http.Header) error {
	return v.wh.Verify(payload, headers)
}
