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

package handlers

import (
	"context"

	"github.com/myblog/blogserver/pkg/auth/types"
	"github.com/myblog/blogserver/pkg/httpserver/request"
	"github.com/myblog/blogserver/pkg/httpserver/response"
	"github.com/myblog/blogserver/pkg/httpserver/router"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
)

// Messages written by the login, registration and verification handlers
const (
	MsgInvalidEncoding  = "Invalid request encoding"
	MsgPasswordMismatch = "Passwords do not match"
	MsgInvalidLink      = "Invalid verification link"
	MsgInvalidOrExpired = "Invalid or expired verification link"
	MsgVerifiedCanLogin = "Email verified successfully! You can now login."
)

// LoginPath is where a verified user is redirected
const LoginPath = "/login"

const (
	formFieldUsername        = "username"
	formFieldPassword        = "password"
	formFieldEmail           = "email"
	formFieldConfirmPassword = "confirm-password"
)

func parseForm(r *request.Request) (request.Values, *response.Response) {
	form, err := request.ParseForm(r.Body)
	if err != nil {
		logger.Debug("form decoding failed",
			logging.Pairs{"path": r.Path, "detail": err.Error()})
		return nil, response.JSON(400, false, MsgInvalidEncoding)
	}
	return form, nil
}

// LoginHandler checks the posted username and password with the
// Authenticator and answers with a JSON result. On success the client is
// sent to redirect.
func LoginHandler(a types.Authenticator, redirect string) router.Handler {
	return router.HandlerFunc(func(ctx context.Context, r *request.Request,
		_ router.Target) *response.Response {
		form, bad := parseForm(r)
		if bad != nil {
			return bad
		}
		res := a.Check(ctx, form.Get(formFieldUsername), form.Get(formFieldPassword))
		if res.Success {
			return response.JSONWithRedirect(true, redirect, res.Message)
		}
		return response.JSON(200, false, res.Message)
	})
}

// RegisterHandler creates a pending registration with the Registrar and
// answers with a JSON result. On success the client is sent to redirect.
func RegisterHandler(reg types.Registrar, redirect string) router.Handler {
	return router.HandlerFunc(func(ctx context.Context, r *request.Request,
		_ router.Target) *response.Response {
		form, bad := parseForm(r)
		if bad != nil {
			return bad
		}
		password := form.Get(formFieldPassword)
		if password != form.Get(formFieldConfirmPassword) {
			return response.JSON(200, false, MsgPasswordMismatch)
		}
		res := reg.Register(ctx, form.Get(formFieldUsername), password,
			form.Get(formFieldEmail))
		if res.Success {
			return response.JSONWithRedirect(true, redirect, res.Message)
		}
		return response.JSON(200, false, res.Message)
	})
}

// VerifyHandler completes a registration from the emailed link
func VerifyHandler(v types.Verifier) router.Handler {
	return router.HandlerFunc(func(ctx context.Context, _ *request.Request,
		t router.Target) *response.Response {
		token, ok1 := t.Query.Lookup("token")
		username, ok2 := t.Query.Lookup("username")
		if !ok1 || !ok2 || token == "" || username == "" {
			return response.BadRequest(MsgInvalidLink)
		}
		res := v.Verify(ctx, username, token)
		if !res.Success {
			logger.Info("verification rejected",
				logging.Pairs{"username": username, "detail": res.Message})
			return response.BadRequest(MsgInvalidOrExpired)
		}
		return response.RedirectWithMessage(LoginPath, MsgVerifiedCanLogin)
	})
}
