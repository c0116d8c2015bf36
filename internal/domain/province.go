package domain

import "strings"

// EncodeProvince converts a province display name to its URL form by writing
// every space as a hyphen.
func EncodeProvince(name string) string {
	return strings.ReplaceAll(name, " ", "-")
}

// DecodeProvince reverses EncodeProvince. Names without hyphens pass through
// unchanged, so decoding an already decoded name is a no-op.
func DecodeProvince(param string) string {
	return strings.ReplaceAll(param, "-", " ")
}
