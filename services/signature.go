package services

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// ComputeSignature returns the hex SHA-512 digest the payment gateway signs
// notifications with: orderID + statusCode + grossAmount + serverKey,
// concatenated in that order. grossAmount is the raw numeric string from the
// notification body, not a reformatted value.
func ComputeSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature checks a supplied signature against the expected digest.
// The comparison is exact; the gateway emits lowercase hex and uppercasing a
// valid signature must fail.
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	expected := ComputeSignature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
