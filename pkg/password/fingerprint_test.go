package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wyrdhq/authcore/pkg/password"
)

func TestFingerprint(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, password.Fingerprint("483921"), password.Fingerprint("483921"))
	})

	t.Run("known vector", func(t *testing.T) {
		t.Parallel()
		// SHA-512("abc")
		assert.Equal(t,
			"ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a"+
				"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
			password.Fingerprint("abc"),
		)
	})

	t.Run("distinct inputs", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, password.Fingerprint("483921"), password.Fingerprint("483922"))
	})

	t.Run("hex encoded", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, password.Fingerprint(""), 128)
		assert.Regexp(t, "^[0-9a-f]+$", password.Fingerprint("anything"))
	})
}
