package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService seals small secrets (auth tokens) at rest. It knows
// nothing about the network, the database or the sync protocol.
//
// Flow:
//
//	Salt   = GenerateSalt()                 (once per credential store)
//	Key    = DeriveKey(passphrase, salt)    (on open)
//	Blob   = Seal(value, Key)               (on write)
//	value  = Open(Blob, Key, &target)       (on read)
type KeyChainService interface {
	// GenerateSalt returns a random 16-byte salt. The salt is not secret and
	// is stored next to the sealed data.
	GenerateSalt() ([]byte, error)

	// DeriveKey derives a 256-bit key from passphrase and salt with Argon2id.
	DeriveKey(passphrase string, salt []byte) []byte

	// Seal serializes value to JSON and encrypts it with key using AES-GCM.
	// The result is nonce || ciphertext.
	Seal(value any, key []byte) ([]byte, error)

	// Open decrypts a blob produced by Seal and unmarshals it into target,
	// which must be a non-nil pointer. A wrong key yields an error.
	Open(blob, key []byte, target any) error
}
