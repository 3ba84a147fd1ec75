package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"testing"
)

type sealedToken struct {
	Token   string `json:"token"`
	ShardID string `json:"shard_id"`
}

// cheapKeyChain keeps Argon2 memory low so tests stay fast.
func cheapKeyChain() *keyChainService {
	return &keyChainService{argonTime: 1, argonMemory: 1024, argonThreads: 1, argonKeyLen: 32}
}

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	svc := NewKeyChainService()

	s1, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	s2, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}

	if len(s1) != 16 || len(s2) != 16 {
		t.Fatalf("salt lengths = %d, %d, want 16", len(s1), len(s2))
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestDeriveKey_DeterministicForSameInputs(t *testing.T) {
	svc := cheapKeyChain()
	salt := bytes.Repeat([]byte{0xAB}, 16)

	k1 := svc.DeriveKey("passphrase", salt)
	k2 := svc.DeriveKey("passphrase", salt)

	if len(k1) != 32 {
		t.Fatalf("key length = %d, want 32", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected keys to match for same passphrase+salt")
	}
}

func TestDeriveKey_DifferentSaltProducesDifferentKey(t *testing.T) {
	svc := cheapKeyChain()

	k1 := svc.DeriveKey("same", bytes.Repeat([]byte{0x01}, 16))
	k2 := svc.DeriveKey("same", bytes.Repeat([]byte{0x02}, 16))

	if bytes.Equal(k1, k2) {
		t.Fatalf("expected different keys for different salts")
	}
}

func TestSeal_LayoutIsNonceThenCiphertext(t *testing.T) {
	svc := cheapKeyChain()
	key := bytes.Repeat([]byte{0x2A}, 32)
	in := sealedToken{Token: "tok", ShardID: "s1"}

	blob, err := svc.Seal(in, key)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher error: %v", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		t.Fatalf("cipher.NewGCM error: %v", err)
	}

	nonceSize := gcm.NonceSize()
	plain, err := gcm.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		t.Fatalf("gcm.Open error: %v", err)
	}

	var out sealedToken
	if err := json.Unmarshal(plain, &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestSeal_NonceRandomness(t *testing.T) {
	svc := cheapKeyChain()
	key := bytes.Repeat([]byte{0x2A}, 32)

	blob1, err := svc.Seal("same", key)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	blob2, err := svc.Seal("same", key)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if bytes.Equal(blob1, blob2) {
		t.Fatalf("expected different blobs for two seals")
	}
}

func TestOpen_RoundTrip(t *testing.T) {
	svc := cheapKeyChain()
	key := svc.DeriveKey("pw", bytes.Repeat([]byte{0x07}, 16))

	blob, err := svc.Seal(sealedToken{Token: "abc"}, key)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	var out sealedToken
	if err := svc.Open(blob, key, &out); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if out.Token != "abc" {
		t.Fatalf("token = %q, want abc", out.Token)
	}
}

func TestOpen_WrongKeyFails(t *testing.T) {
	svc := cheapKeyChain()
	salt := bytes.Repeat([]byte{0x07}, 16)

	blob, err := svc.Seal("secret", svc.DeriveKey("right", salt))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	var out string
	if err := svc.Open(blob, svc.DeriveKey("wrong", salt), &out); err == nil {
		t.Fatalf("expected error for wrong key")
	}
}

func TestOpen_TooShort(t *testing.T) {
	svc := cheapKeyChain()

	var out string
	err := svc.Open([]byte{1, 2, 3}, bytes.Repeat([]byte{0x01}, 32), &out)
	if err != ErrCiphertextTooShort {
		t.Fatalf("err = %v, want ErrCiphertextTooShort", err)
	}
}
