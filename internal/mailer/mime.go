package mailer

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
)

// encodeRaw renders the envelope as an RFC 2822 plain-text message and
// base64url-encodes it the way the Gmail API's Raw field expects.
func encodeRaw(env Envelope) string {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", env.From)
	fmt.Fprintf(&b, "To: %s\r\n", env.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", env.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(env.Body)

	return base64.RawURLEncoding.EncodeToString([]byte(b.String()))
}
