package services_test

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/services"
)

// referenceSignature is an independent implementation of the gateway's
// documented signing scheme, kept deliberately separate from the production
// code path.
func referenceSignature(orderID, statusCode, grossAmount, serverKey string) string {
	h := sha512.New()
	h.Write([]byte(orderID))
	h.Write([]byte(statusCode))
	h.Write([]byte(grossAmount))
	h.Write([]byte(serverKey))
	return hex.EncodeToString(h.Sum(nil))
}

func TestComputeSignature_MatchesReference(t *testing.T) {
	cases := []struct {
		orderID     string
		statusCode  string
		grossAmount string
		serverKey   string
	}{
		{"f3b9a6a2-1c65-4c8a-9d21-8f1f2a6f7e01", "200", "100000.00", "SB-Mid-server-abc123"},
		{"f3b9a6a2-1c65-4c8a-9d21-8f1f2a6f7e01_1719382800", "200", "100000.00", "SB-Mid-server-abc123"},
		{"order-1", "201", "0.00", "k"},
		{"", "", "", ""},
	}
	for _, tc := range cases {
		got := services.ComputeSignature(tc.orderID, tc.statusCode, tc.grossAmount, tc.serverKey)
		assert.Equal(t, referenceSignature(tc.orderID, tc.statusCode, tc.grossAmount, tc.serverKey), got)
		assert.True(t, services.VerifySignature(tc.orderID, tc.statusCode, tc.grossAmount, tc.serverKey, got))
	}
}

func TestVerifySignature_RejectsSingleCharacterMutations(t *testing.T) {
	const (
		orderID     = "f3b9a6a2-1c65-4c8a-9d21-8f1f2a6f7e01"
		statusCode  = "200"
		grossAmount = "100000.00"
		serverKey   = "SB-Mid-server-abc123"
	)
	valid := services.ComputeSignature(orderID, statusCode, grossAmount, serverKey)

	for i := 0; i < len(valid); i++ {
		mutated := []byte(valid)
		if mutated[i] == 'f' {
			mutated[i] = '0'
		} else {
			mutated[i] = 'f'
		}
		assert.False(t, services.VerifySignature(orderID, statusCode, grossAmount, serverKey, string(mutated)),
			"mutation at index %d must be rejected", i)
	}
}

func TestVerifySignature_IsCaseSensitive(t *testing.T) {
	valid := services.ComputeSignature("o", "200", "1000.00", "key")
	assert.True(t, services.VerifySignature("o", "200", "1000.00", "key", valid))
	assert.False(t, services.VerifySignature("o", "200", "1000.00", "key", strings.ToUpper(valid)))
}
