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

package registration

import (
	"testing"

	"github.com/myblog/blogserver/pkg/mail/options"

	"github.com/stretchr/testify/require"
)

func TestNewDispatcher(t *testing.T) {
	d, err := NewDispatcher(nil)
	require.NoError(t, err)
	require.NotNil(t, d)

	o := options.New()
	o.Provider = "smtp"
	o.Host = "mail.example.com"
	d, err = NewDispatcher(o)
	require.NoError(t, err)
	require.NotNil(t, d)

	o.Provider = "carrier-pigeon"
	_, err = NewDispatcher(o)
	require.EqualError(t, err, "invalid mail provider: carrier-pigeon")
}
