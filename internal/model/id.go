package model

import "crypto/rand"

const (
	idLength   = 10
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewScreenID returns a short random base-36 token used as a screen's
// primary key and share-URL path segment. Collisions are statistically
// negligible; the insert path still retries on a unique violation.
func NewScreenID() string {
	buf := make([]byte, idLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf)
}
