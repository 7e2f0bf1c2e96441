package hog

import (
	"crypto/sha256"

	b58 "github.com/mr-tron/base58/base58"
)

// Fingerprint returns a short base58 digest of the serialized descriptor
// state. Two descriptors fingerprint identically iff their configuration and
// computed tensors are bit-identical, which makes the digest usable as a
// cache key for computed features.
func (d *Descriptor) Fingerprint() (string, error) {
	data, err := d.MarshalBinary()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return b58.Encode(sum[:]), nil
}
