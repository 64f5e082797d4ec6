package swift

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/driftfs/driftfs/errs"
)

// tempURLVersionMarker is the object-storage API version segment. Swift
// validates temp-URL signatures against the full
// /v1/<account>/<container>/<object> path, so the marker must be present in
// the object's public URL for a signature to be constructible.
const tempURLVersionMarker = "/v1/"

// signTempURL builds a Swift temporary URL granting time-limited,
// unauthenticated access to one object.
//
// The canonical message is "METHOD\n<unix expiry>\n<object path>", where the
// object path starts at the /v1/ marker of the public URL. The signature is
// hex-encoded HMAC-SHA256 over that message. Any deviation in message
// construction — ordering, a missing newline, a wrong timestamp unit —
// produces URLs the server silently rejects.
func signTempURL(publicURL, method string, expires int64, key []byte) (string, error) {
	base, rest, ok := strings.Cut(publicURL, tempURLVersionMarker)
	if !ok {
		return "", errs.New(errs.ErrKindSigningFailed,
			fmt.Sprintf("object URL %q has no %q marker", publicURL, tempURLVersionMarker))
	}
	objectPath := tempURLVersionMarker + rest

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s\n%d\n%s", method, expires, objectPath)
	sig := hex.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("%s%s?temp_url_sig=%s&temp_url_expires=%d", base, objectPath, sig, expires), nil
}
