package eth

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysEth(t *testing.T) {
	const (
		messageHex    = "0xb412a9afc250a81b76a64bf59f960839489577ccc5a9b545c574de11a2769455"
		privateKeyHex = "0xa5a804475bf02a3aef2e563fe5de307b7731ce55290e0afb8dd3b0aaeb159429"
		publicKeyHex  = "0x0472a330f37a3dc1f0cfcd326ad094e0bc441f6b2e3c58c0400a62b001775c69b83f0c7cf84c7e629aca399e635683cc55e0489570c3f7d205ab5924b4549967a7"

		expectedMessageHashHex = "0x5bfd8fe42a24d57342ac211dcf319ec148302c17b0f0bfa85d83fb82bb13ac5b"
		expectedSignatureHex   = "0xf39b93ed322d7334c891516d8bee70b44c6b46b2dc3b9f6ad06d896975ffca0511f712296cc705d435cff51391275f8ae3dd09a4d5619df7a295606cc8e555d21c"
	)

	var (
		digest     []byte
		signature  []byte
		privateKey *ecdsa.PrivateKey
	)

	t.Run("ethereum hash", func(t *testing.T) {
		var (
			message  = hexutil.MustDecode(messageHex)
			expected = hexutil.MustDecode(expectedMessageHashHex)
		)
		digest = Hash(message)
		assert.Equal(t, expected, digest)
	})

	t.Run("ethereum signature", func(t *testing.T) {
		var (
			err      error
			expected = hexutil.MustDecode(expectedSignatureHex)
		)
		privateKey, err = PrivateKeyFromHex(privateKeyHex)
		require.NoError(t, err)
		assert.Equal(t, hexutil.MustDecode(publicKeyHex), PublicKeyBytes(&privateKey.PublicKey))

		signature, err = Sign(digest, privateKey)
		require.NoError(t, err)
		assert.Equal(t, expected, signature)
	})

	t.Run("verify ethereum signature", func(t *testing.T) {
		publicKey := hexutil.MustDecode(publicKeyHex)
		assert.True(t, Verify(publicKey, digest, signature))
	})

	t.Run("recover signer", func(t *testing.T) {
		signer, err := Recover(digest, signature)
		require.NoError(t, err)
		assert.Equal(t, Address(privateKey), signer)
		assert.Equal(t, crypto.PubkeyToAddress(privateKey.PublicKey), signer)
	})
}

func TestRecoverRejectsShortSignature(t *testing.T) {
	_, err := Recover(make([]byte, 32), make([]byte, 64))
	assert.ErrorIs(t, err, ErrSignatureLength)
}

func TestRecoverDoesNotMutateSignature(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)

	digest := Hash([]byte("order"))
	signature, err := Sign(digest, key)
	require.NoError(t, err)
	v := signature[64]

	_, err = Recover(digest, signature)
	require.NoError(t, err)
	assert.Equal(t, v, signature[64])
}

func TestKeccak256(t *testing.T) {
	assert.Equal(t,
		"0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		hexutil.Encode(Keccak256()),
	)
	assert.Equal(t, crypto.Keccak256([]byte("ab"), []byte("c")), Keccak256([]byte("abc")))
}
