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

package options

import "testing"

func TestValidate(t *testing.T) {
	o := New()
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}

	o.Provider = "smtp"
	if err := o.Validate(); err != ErrMissingHost {
		t.Errorf("expected %v got %v", ErrMissingHost, err)
	}

	o.Host = "smtp.example.com"
	o.Username = "blog@example.com"
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}
	if o.From != "blog@example.com" {
		t.Errorf("expected from to default to username, got %s", o.From)
	}

	o.Provider = "carrier-pigeon"
	if err := o.Validate(); err == nil {
		t.Error("expected error for invalid provider")
	}
}
