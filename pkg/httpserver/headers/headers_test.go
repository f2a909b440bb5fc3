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

package headers

import "testing"

func TestContentTypeForPath(t *testing.T) {
	tests := []struct {
		path, expected string
	}{
		{"/login.html", ValueTextHTML},
		{"/styles.css", ValueTextCSS},
		{"/js/notifications.js", ValueApplicationJavaScript},
		{"/INDEX.HTML", ValueTextHTML},
		{"/robots.txt", ValueTextPlain},
		{"/noext", ValueTextPlain},
		{"/dir.v2/file", ValueTextPlain},
	}
	for _, test := range tests {
		if got := ContentTypeForPath(test.path); got != test.expected {
			t.Errorf("%s: expected %s got %s", test.path, test.expected, got)
		}
	}
}
