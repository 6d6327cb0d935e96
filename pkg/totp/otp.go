package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base32"
	"errors"
	"fmt"
	"hash"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultDigits    = 6        // e-mailed verification codes are 6 decimal digits
	DefaultPeriod    = 60       // 60-second time step
	DefaultSkew      = 1        // adjacent steps tolerated by ValidateCode
	DefaultAlgorithm = "SHA512" // HMAC-SHA512
)

// ValidateSecretKeyRegex ensures Base32 format: uppercase A-Z, digits 2-7, optional padding
var ValidateSecretKeyRegex = regexp.MustCompile("^[A-Z2-7]+=*$")

// Params describes a per-account code derivation.
type Params struct {
	Secret      string // Base32-encoded secret key (required)
	AccountName string // User identifier like email (required for KeyURI)
	Issuer      string // Service name displayed in authenticator apps (required for KeyURI)
	Algorithm   string // HMAC algorithm: SHA1, SHA256 or SHA512 (optional, defaults to SHA512)
	Digits      int    // Number of digits in generated codes (optional, defaults to 6)
	Period      int    // Time step in seconds (optional, defaults to 60)
	Skew        int    // Adjacent steps ValidateCode tolerates (optional, defaults to 1)
}

// withDefaults returns a copy with package defaults applied to zero-valued fields.
func (p Params) withDefaults() Params {
	if p.Algorithm == "" {
		p.Algorithm = DefaultAlgorithm
	}
	if p.Digits == 0 {
		p.Digits = DefaultDigits
	}
	if p.Period == 0 {
		p.Period = DefaultPeriod
	}
	if p.Skew == 0 {
		p.Skew = DefaultSkew
	}
	return p
}

func (p Params) hashFunc() (func() hash.Hash, error) {
	switch strings.ToUpper(p.Algorithm) {
	case "SHA1":
		return sha1.New, nil
	case "SHA256":
		return sha256.New, nil
	case "SHA512":
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, p.Algorithm)
	}
}

func (p Params) secretBytes() ([]byte, error) {
	secret := strings.TrimSpace(strings.ToUpper(p.Secret))
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if !ValidateSecretKeyRegex.MatchString(secret) {
		return nil, ErrInvalidSecret
	}
	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}

// GenerateSecretKey generates a new Base32-encoded 160-bit secret key.
func GenerateSecretKey() (string, error) {
	secret := make([]byte, 20) // RFC 4226 recommended minimum
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret), nil
}

// GenerateCode derives the code for the time step containing now.
func GenerateCode(params Params) (string, error) {
	return GenerateCodeAt(params, time.Now())
}

// GenerateCodeAt derives the code for the time step containing t.
// The derivation is deterministic: any two calls within the same step
// yield identical output.
func GenerateCodeAt(params Params, t time.Time) (string, error) {
	params = params.withDefaults()

	key, err := params.secretBytes()
	if err != nil {
		return "", err
	}
	newHash, err := params.hashFunc()
	if err != nil {
		return "", err
	}

	counter := t.Unix() / int64(params.Period)
	code := hotp(newHash, key, counter, params.Digits)

	return fmt.Sprintf("%0*d", params.Digits, code), nil
}

// ValidateCode recomputes codes for the current step and params.Skew
// adjacent steps on either side and reports whether code matches any of
// them. The lifecycle layer normally compares against a stored artifact
// instead; this path exists for authenticator-app style validation where
// no artifact was stored.
func ValidateCode(params Params, code string) (bool, error) {
	params = params.withDefaults()

	code = strings.TrimSpace(code)
	if !regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, params.Digits)).MatchString(code) {
		return false, ErrInvalidCodeFormat
	}

	key, err := params.secretBytes()
	if err != nil {
		return false, err
	}
	newHash, err := params.hashFunc()
	if err != nil {
		return false, err
	}

	counter := time.Now().Unix() / int64(params.Period)
	for i := -params.Skew; i <= params.Skew; i++ {
		candidate := hotp(newHash, key, counter+int64(i), params.Digits)
		if fmt.Sprintf("%0*d", params.Digits, candidate) == code {
			return true, nil
		}
	}

	return false, nil
}

// KeyURI creates an otpauth:// provisioning URI for authenticator apps.
// The format follows the Key Uri Format specification:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func KeyURI(params Params) (string, error) {
	params = params.withDefaults()

	if _, err := params.secretBytes(); err != nil {
		return "", err
	}
	if params.AccountName == "" {
		return "", ErrMissingAccountName
	}
	if params.Issuer == "" {
		return "", ErrMissingIssuer
	}

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(params.Issuer),
		url.PathEscape(params.AccountName),
	)

	query := url.Values{}
	query.Set("secret", strings.ToUpper(strings.TrimSpace(params.Secret)))
	query.Set("issuer", params.Issuer)
	query.Set("algorithm", strings.ToUpper(params.Algorithm))
	query.Set("digits", fmt.Sprintf("%d", params.Digits))
	query.Set("period", fmt.Sprintf("%d", params.Period))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// hotp implements RFC 4226 HMAC-based one-time password truncation over
// an arbitrary HMAC hash function.
func hotp(newHash func() hash.Hash, key []byte, counter int64, digits int) int {
	// Counter as big-endian 8-byte array (RFC 4226 requirement)
	counterBytes := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		counterBytes[i] = byte(counter & 0xff)
		counter >>= 8
	}

	mac := hmac.New(newHash, key)
	mac.Write(counterBytes)
	sum := mac.Sum(nil)

	// Dynamic truncation: last 4 bits index a 31-bit window in the digest
	offset := sum[len(sum)-1] & 0x0f
	code := (int(sum[offset]&0x7f) << 24) |
		(int(sum[offset+1]&0xff) << 16) |
		(int(sum[offset+2]&0xff) << 8) |
		int(sum[offset+3]&0xff)

	return code % int(math.Pow10(digits))
}
