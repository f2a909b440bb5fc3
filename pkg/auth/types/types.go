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

// Package types defines the login, registration and verification contracts
// used by the route handlers
package types

import "context"

// Result is the outcome of an Authenticator, Registrar or Verifier call. The
// Message is always suitable for display to the user.
type Result struct {
	Success bool
	Message string
}

// Succeeded returns a successful Result with the message
func Succeeded(message string) *Result {
	return &Result{Success: true, Message: message}
}

// Failed returns a failed Result with the message
func Failed(message string) *Result {
	return &Result{Message: message}
}

// Authenticator checks a username and password
type Authenticator interface {
	Check(ctx context.Context, username, password string) *Result
}

// Registrar creates a pending registration and sends its verification email
type Registrar interface {
	Register(ctx context.Context, username, password, email string) *Result
}

// Verifier completes a pending registration
type Verifier interface {
	Verify(ctx context.Context, username, token string) *Result
}

// Credential is a seed user loaded from configuration or a users file
type Credential struct {
	Username string
	// Hash is the bcrypt hash of the user's password
	Hash  string
	Email string
}

// CredentialsManifest is a set of Credentials keyed by username
type CredentialsManifest map[string]*Credential

// CredentialsFileFormat is the format of a users file
type CredentialsFileFormat string

const (
	// CSV files hold username,password[,email] rows with a header row
	CSV CredentialsFileFormat = "csv"
	// HTPasswd files hold username:bcrypt-hash lines
	HTPasswd CredentialsFileFormat = "htpasswd"
	// YAML files hold a users list of username, password and email
	YAML CredentialsFileFormat = "yaml"
)
