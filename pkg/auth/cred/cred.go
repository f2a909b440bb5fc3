/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cred hashes and verifies user passwords
package cred

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned when a password does not match its hash
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnsupportedHash is returned for password hashes that are not bcrypt
var ErrUnsupportedHash = errors.New("unsupported password hash format")

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// IsHash returns true if s is a bcrypt hash
func IsHash(s string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Hash returns the bcrypt hash of password at the provided cost. A cost
// outside of bcrypt's range uses bcrypt.DefaultCost.
func Hash(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ProcessRawCredential returns raw unchanged if it is already a bcrypt hash,
// otherwise it returns the hash of raw
func ProcessRawCredential(raw string, cost int) (string, error) {
	if IsHash(raw) {
		return raw, nil
	}
	return Hash(raw, cost)
}

// VerifyPassword verifies a password against a stored bcrypt hash
func VerifyPassword(hash, password string) error {
	if !IsHash(hash) {
		return ErrUnsupportedHash
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrUnauthorized
	}
	return nil
}
