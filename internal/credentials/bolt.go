// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package credentials

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

var (
	bucketMeta   = []byte("meta")
	bucketTokens = []byte("tokens")

	saltKey  = []byte("salt")
	checkKey = []byte("check")
)

// checkValue is sealed into the meta bucket on creation so that a wrong
// passphrase is detected on open rather than on the first token read.
const checkValue = "go-note-sync"

type boltTokenStore struct {
	db       *bbolt.DB
	keychain crypto.KeyChainService
	key      []byte
	logger   *logger.Logger
}

// NewBoltTokenStore opens (or creates) the bbolt file at path and derives
// the sealing key from passphrase. A fresh file gets a random salt; an
// existing file must have been created with the same passphrase, otherwise
// [ErrWrongPassphrase] is returned.
func NewBoltTokenStore(path, passphrase string, keychain crypto.KeyChainService, log *logger.Logger) (TokenStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	s := &boltTokenStore{db: db, keychain: keychain, logger: log}
	if err = s.init(passphrase); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *boltTokenStore) init(passphrase string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return fmt.Errorf("failed to create meta bucket: %w", err)
		}
		if _, err = tx.CreateBucketIfNotExists(bucketTokens); err != nil {
			return fmt.Errorf("failed to create tokens bucket: %w", err)
		}

		salt := meta.Get(saltKey)
		if salt == nil {
			return s.initMeta(meta, passphrase)
		}

		s.key = s.keychain.DeriveKey(passphrase, salt)

		var check string
		if err = s.keychain.Open(meta.Get(checkKey), s.key, &check); err != nil || check != checkValue {
			return ErrWrongPassphrase
		}

		return nil
	})
}

func (s *boltTokenStore) initMeta(meta *bbolt.Bucket, passphrase string) error {
	salt, err := s.keychain.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	s.key = s.keychain.DeriveKey(passphrase, salt)

	check, err := s.keychain.Seal(checkValue, s.key)
	if err != nil {
		return fmt.Errorf("failed to seal check value: %w", err)
	}

	if err = meta.Put(saltKey, salt); err != nil {
		return fmt.Errorf("failed to save salt: %w", err)
	}
	return meta.Put(checkKey, check)
}

// ReadToken implements [TokenStore].
func (s *boltTokenStore) ReadToken(ctx context.Context, key string) (models.AuthToken, error) {
	if key == "" {
		return models.AuthToken{}, ErrEmptyKey
	}

	var sealed []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketTokens).Get([]byte(key))
		if v == nil {
			return ErrTokenNotFound
		}
		sealed = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return models.AuthToken{}, err
	}

	var token models.AuthToken
	if err = s.keychain.Open(sealed, s.key, &token); err != nil {
		s.logger.Err(err).
			Str("func", "boltTokenStore.ReadToken").
			Str("key", key).
			Msg("failed to open sealed token")
		return models.AuthToken{}, fmt.Errorf("failed to open token %q: %w", key, err)
	}

	return token, nil
}

// WriteToken implements [TokenStore].
func (s *boltTokenStore) WriteToken(ctx context.Context, key string, token models.AuthToken) error {
	if key == "" {
		return ErrEmptyKey
	}

	sealed, err := s.keychain.Seal(token, s.key)
	if err != nil {
		return fmt.Errorf("failed to seal token %q: %w", key, err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTokens).Put([]byte(key), sealed)
	})
	if err != nil {
		s.logger.Err(err).
			Str("func", "boltTokenStore.WriteToken").
			Str("key", key).
			Msg("failed to write token")
		return fmt.Errorf("failed to write token %q: %w", key, err)
	}

	return nil
}

// DeleteToken implements [TokenStore].
func (s *boltTokenStore) DeleteToken(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket.Get([]byte(key)) == nil {
			return ErrTokenNotFound
		}
		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete token %q: %w", key, err)
		}
		return nil
	})
}

// Close implements [TokenStore].
func (s *boltTokenStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
