// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package oauth1 implements provider-side verification of OAuth 1.0a
// HMAC-SHA1 signed requests per RFC 5849, the signing scheme used by LTI
// 1.x basic launches.
package oauth1

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

const SignatureMethodHMACSHA1 = "HMAC-SHA1"

var (
	ErrMissingSignature     = errors.New("request has no oauth_signature")
	ErrSignatureMismatch    = errors.New("signature mismatch")
	ErrUnsupportedSignature = errors.New("unsupported oauth_signature_method")
)

// percentEncode implements RFC 5849 section 3.6 encoding, which is stricter
// than url.QueryEscape: spaces become %20 and only unreserved characters
// are left bare.
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') || c == '-' || c == '.' || c == '_' || c == '~' {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// baseURI normalizes the request URL per RFC 5849 section 3.4.1.2:
// lowercase scheme and host, default ports elided, query and fragment
// stripped.
func baseURI(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid request url: %w", err)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)

	switch scheme {
	case "http":
		host = strings.TrimSuffix(host, ":80")
	case "https":
		host = strings.TrimSuffix(host, ":443")
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	return scheme + "://" + host + path, nil
}

// BaseString builds the signature base string from the HTTP method, the
// request URL and the body form parameters; query string parameters are
// collected from the URL. Every name/value occurrence is its own
// parameter per RFC 5849 section 3.4.1.3, so repeated names all
// contribute. oauth_signature itself is excluded.
func BaseString(method, rawURL string, params url.Values) (string, error) {
	uri, err := baseURI(rawURL)
	if err != nil {
		return "", err
	}

	u, _ := url.Parse(rawURL)
	pairs := make([]string, 0, len(params))
	for _, source := range []url.Values{params, u.Query()} {
		for k, vs := range source {
			if k == "oauth_signature" {
				continue
			}
			for _, v := range vs {
				pairs = append(pairs, percentEncode(k)+"="+percentEncode(v))
			}
		}
	}
	sort.Strings(pairs)

	return strings.ToUpper(method) + "&" +
		percentEncode(uri) + "&" +
		percentEncode(strings.Join(pairs, "&")), nil
}

// Sign computes the HMAC-SHA1 signature for the given request with the
// consumer secret. LTI launches carry no token secret, so the key's second
// half is empty.
func Sign(method, rawURL string, params url.Values, secret string) (string, error) {
	base, err := BaseString(method, rawURL, params)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha1.New, []byte(percentEncode(secret)+"&"))
	mac.Write([]byte(base))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Verify checks the oauth_signature carried in params against a signature
// recomputed with the given consumer secret.
func Verify(method, rawURL string, params url.Values, secret string) error {
	if m := params.Get("oauth_signature_method"); m != "" && m != SignatureMethodHMACSHA1 {
		return fmt.Errorf("%w: %s", ErrUnsupportedSignature, m)
	}

	provided := params.Get("oauth_signature")
	if provided == "" {
		return ErrMissingSignature
	}

	expected, err := Sign(method, rawURL, params, secret)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
		return ErrSignatureMismatch
	}

	return nil
}
