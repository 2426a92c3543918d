// Package uploads signs short-lived upload URLs for audio recordings.
package uploads

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// DefaultTTL is how long a signed URL stays valid.
const DefaultTTL = 15 * time.Minute

// MaxLengthSeconds caps the declared recording length.
const MaxLengthSeconds = 600

var allowedContentTypes = map[string]bool{
	"audio/wav":   true,
	"audio/x-wav": true,
	"audio/wave":  true,
	"audio/webm":  true,
	"audio/mpeg":  true,
	"audio/ogg":   true,
	"audio/mp4":   true,
}

// SignedURL is an upload target for one recording.
type SignedURL struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Signer creates and checks HMAC-SHA256 signed upload URLs.
type Signer struct {
	baseURL string
	key     []byte
	ttl     time.Duration
	now     func() time.Time
}

func NewSigner(baseURL, key string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{baseURL: strings.TrimRight(baseURL, "/"), key: []byte(key), ttl: ttl, now: time.Now}
}

// Sign returns a URL the user can PUT a recording to. The object key is
// audio/<user>/<unix-ms>.wav.
func (s *Signer) Sign(userID int64, contentType string, lengthSeconds int) (*SignedURL, error) {
	if contentType == "" {
		return nil, model.Validationf("contentType is required")
	}
	if !allowedContentTypes[contentType] {
		return nil, model.Validationf("unsupported contentType %q", contentType)
	}
	if lengthSeconds < 0 || lengthSeconds > MaxLengthSeconds {
		return nil, model.Validationf("lengthSeconds must be between 0 and %d", MaxLengthSeconds)
	}

	now := s.now()
	key := fmt.Sprintf("audio/%d/%d.wav", userID, now.UnixMilli())
	exp := now.Add(s.ttl).Unix()

	q := url.Values{}
	q.Set("contentType", contentType)
	q.Set("expires", strconv.FormatInt(exp, 10))
	q.Set("signature", s.signature(key, contentType, exp))

	return &SignedURL{
		UploadURL: s.baseURL + "/" + key + "?" + q.Encode(),
		ObjectKey: key,
		ExpiresAt: time.Unix(exp, 0).UTC(),
	}, nil
}

// Verify checks a signature produced by Sign.
func (s *Signer) Verify(objectKey, contentType string, expires int64, signature string) error {
	if s.now().Unix() > expires {
		return fmt.Errorf("%w: upload url expired", model.ErrForbidden)
	}
	want := s.signature(objectKey, contentType, expires)
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return fmt.Errorf("%w: bad signature", model.ErrForbidden)
	}
	return nil
}

func (s *Signer) signature(objectKey, contentType string, expires int64) string {
	mac := hmac.New(sha256.New, s.key)
	fmt.Fprintf(mac, "PUT\n%s\n%s\n%d", objectKey, contentType, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
