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

package request

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"

	berr "github.com/myblog/blogserver/pkg/errors"
	"github.com/myblog/blogserver/pkg/httpserver/headers"
	"github.com/myblog/blogserver/pkg/httpserver/methods"
)

// Parser reads one request from a buffered connection stream
type Parser struct {
	// MaxBodyBytes caps the declared Content-Length. 0 means no limit
	MaxBodyBytes int64
	// MaxLineBytes caps the length of the request line and each header line.
	// 0 means no limit
	MaxLineBytes int
}

// Parse reads one request from r using a Parser with no limits
func Parse(r *bufio.Reader) (*Request, error) {
	return (&Parser{}).Parse(r)
}

// Parse reads the request line, the header block, and for POST requests
// exactly ContentLength body bytes. Every error returned is a ParseFailure.
func (p *Parser) Parse(r *bufio.Reader) (*Request, error) {
	line, err := p.readLine(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, berr.NewParseFailure(berr.ErrEmptyRequest)
		}
		return nil, berr.NewParseFailure(err)
	}
	if strings.TrimSpace(line) == "" {
		return nil, berr.NewParseFailure(berr.ErrEmptyRequest)
	}

	fields := strings.Split(line, " ")
	if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
		return nil, berr.NewParseFailure(berr.ErrMalformedRequestLine)
	}

	req := &Request{
		Method: fields[0],
		Target: fields[1],
		Header: make(Header),
	}
	if len(fields) > 2 {
		req.Proto = fields[2]
	}
	var rawQuery string
	req.Path, rawQuery = SplitTarget(req.Target)
	req.Query = ParseQuery(rawQuery)

	var sawLength bool
	for {
		line, err = p.readLine(r)
		if err != nil {
			// a client that half-closes after the headers is treated as
			// having terminated the header block
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, berr.NewParseFailure(err)
		}
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if strings.EqualFold(name, headers.NameContentLength) {
			if sawLength {
				continue
			}
			sawLength = true
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil || n < 0 {
				return nil, berr.NewParseFailure(berr.ErrInvalidContentLength)
			}
			req.ContentLength = n
		}
		req.Header.set(name, value)
	}

	if req.Method != methods.MethodPost || req.ContentLength == 0 {
		return req, nil
	}
	if p.MaxBodyBytes > 0 && req.ContentLength > p.MaxBodyBytes {
		return nil, berr.NewParseFailure(berr.ErrBodyTooLarge)
	}
	req.Body = make([]byte, req.ContentLength)
	if _, err := io.ReadFull(r, req.Body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, berr.NewParseFailure(berr.ErrIncompleteBody)
		}
		return nil, berr.NewParseFailure(readError(err))
	}
	return req, nil
}

// readLine returns the next line without its CRLF or LF terminator. A final
// unterminated line is returned as-is; io.EOF is only returned when no bytes
// remain.
func (p *Parser) readLine(r *bufio.Reader) (string, error) {
	var line []byte
	for {
		frag, isPrefix, err := r.ReadLine()
		if err != nil {
			if len(line) > 0 && errors.Is(err, io.EOF) {
				return string(line), nil
			}
			return "", readError(err)
		}
		line = append(line, frag...)
		if p.MaxLineBytes > 0 && len(line) > p.MaxLineBytes {
			return "", berr.ErrLineTooLong
		}
		if !isPrefix {
			return string(line), nil
		}
	}
}

func readError(err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return berr.ErrReadTimeout
	}
	return err
}
