package websub

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // sha1 is what the WebSub spec and the hub use for X-Hub-Signature
	"encoding/hex"
	"strings"
)

// signaturePrefix is the only algorithm the hub sends for signed pushes
const signaturePrefix = "sha1="

// VerifySignature checks the X-Hub-Signature header against the HMAC-SHA1
// digest of the raw request body. An empty secret disables verification
// entirely, for setups without hub.secret configured. Comparison is
// constant-time.
func VerifySignature(body []byte, header, secret string) bool {
	if secret == "" {
		return true
	}

	if !strings.HasPrefix(header, signaturePrefix) {
		return false
	}
	theirs := strings.TrimSpace(strings.TrimPrefix(header, signaturePrefix))

	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	ours := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(ours), []byte(theirs))
}
