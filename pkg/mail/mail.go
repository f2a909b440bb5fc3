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

// Package mail delivers the verification emails sent to new registrants
package mail

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/myblog/blogserver/pkg/mail/options"

	"github.com/google/uuid"
)

// Dispatcher sends a verification email and returns the token it embeds
type Dispatcher interface {
	SendVerification(ctx context.Context, email, username string) (string, error)
}

// Sender delivers a composed Message
type Sender interface {
	Send(ctx context.Context, m *Message) error
}

// Message is a single outbound HTML email
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	// Link is the verification link embedded in HTML
	Link string
}

const verificationBody = `<html>
<body>
    <h2>Welcome to My Blog!</h2>
    <p>Hi %s,</p>
    <p>Please click the link below to verify your email address:</p>
    <a href="%s">Verify Email</a>
    <p>If you didn't create an account, you can ignore this email.</p>
</body>
</html>
`

// VerificationLink returns the /verify link for the token and username
func VerificationLink(base, token, username string) string {
	return strings.TrimSuffix(base, "/") + "/verify?token=" + url.QueryEscape(token) +
		"&username=" + url.QueryEscape(username)
}

// VerificationBody returns the HTML body of the verification email
func VerificationBody(username, link string) string {
	return fmt.Sprintf(verificationBody, html.EscapeString(username),
		html.EscapeString(link))
}

type dispatcher struct {
	options *options.Options
	sender  Sender
	newID   func() string
}

// NewDispatcher returns a Dispatcher that composes verification emails per o
// and hands them to s
func NewDispatcher(o *options.Options, s Sender) Dispatcher {
	if o == nil {
		o = options.New()
	}
	return &dispatcher{options: o, sender: s, newID: uuid.NewString}
}

func (d *dispatcher) SendVerification(ctx context.Context, email, username string) (string, error) {
	token := d.newID()
	link := VerificationLink(d.options.VerifyURLBase, token, username)
	m := &Message{
		From:    d.options.From,
		To:      email,
		Subject: d.options.Subject,
		HTML:    VerificationBody(username, link),
		Link:    link,
	}
	if err := d.sender.Send(ctx, m); err != nil {
		return "", err
	}
	return token, nil
}
