// Package fingerprint derives stable, order-independent identifiers for the
// field-shape of a form. Fingerprints key the dataset rotation ledger: two
// structurally identical forms on the same domain always hash identically
// regardless of field ordering.
package fingerprint

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/entrhq/fillforge/pkg/field"
)

// Fingerprint identifies one form shape on one origin.
type Fingerprint struct {
	// Hash is a non-negative base-36 token derived from the signature.
	Hash string

	// Origin is the hostname the form was observed on.
	Origin string

	// Signature is the sorted, joined field signature the hash was computed
	// from. Kept for diagnostics; not persisted.
	Signature string

	// FieldCount is the number of fields contributing to the signature.
	FieldCount int
}

// Compute fingerprints a set of form fields observed on the given origin.
// The result is deterministic and independent of field order.
//
// Hash collisions across distinct forms are an accepted approximation: the
// rotation ledger keyed by a colliding hash simply rotates over both forms as
// if they were one.
func Compute(origin string, fields []field.Descriptor) Fingerprint {
	host := hostOf(origin)

	sigs := make([]string, 0, len(fields))
	for _, d := range fields {
		sigs = append(sigs, fmt.Sprintf("%s:%s", d.ControlType(), strings.ToLower(d.Identifier())))
	}
	// The sort is what makes the fingerprint order-independent.
	sort.Strings(sigs)

	signature := fmt.Sprintf("%s|%s|%d", host, strings.Join(sigs, ";"), len(fields))

	return Fingerprint{
		Hash:       strconv.FormatUint(uint64(hash32(signature)), 36),
		Origin:     host,
		Signature:  signature,
		FieldCount: len(fields),
	}
}

// hash32 is a polynomial rolling hash, base 31, masked to 32 bits. Any
// collision-resistant 32-bit hash would satisfy the contract; this one is
// stable across processes and trivially portable.
func hash32(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}

// hostOf extracts the hostname from an origin that may be a full URL. Bare
// hostnames pass through unchanged.
func hostOf(origin string) string {
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		return u.Hostname()
	}
	return origin
}
