// Package objectid generates and checks the 24-character hex identifiers used
// for every record reference exposed by the API.
package objectid

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const Length = 24

var validate = validator.New()

// New returns a lowercase 24-char hex id: a 4-byte big-endian unix timestamp
// followed by 8 random bytes, so ids sort roughly by creation time.
func New() string {
	return NewAt(time.Now())
}

func NewAt(t time.Time) string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(t.Unix()))
	r := uuid.New()
	// byte 6 carries the version and byte 8 the variant
	copy(b[4:10], r[:6])
	copy(b[10:], r[9:11])
	return hex.EncodeToString(b[:])
}

// IsValid reports whether s is a well-formed object id. Hex digits may be
// in either case.
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	return validate.Var(strings.ToLower(s), "mongodb") == nil
}

// Normalize returns the canonical lowercase form stored and compared by the
// repositories.
func Normalize(s string) string {
	return strings.ToLower(s)
}

// Timestamp extracts the creation second encoded in a valid id.
func Timestamp(id string) (time.Time, bool) {
	if !IsValid(id) {
		return time.Time{}, false
	}
	b, err := hex.DecodeString(id[:8])
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(int64(binary.BigEndian.Uint32(b)), 0).UTC(), true
}
