// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package secretbox

import (
	"encoding/base64"
	"errors"
	"testing"
)

const testKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=" // base64 of 32 bytes

func TestNewKeyValidation(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "valid key", key: testKey, wantErr: false},
		{name: "not base64", key: "!!!", wantErr: true},
		{name: "wrong length", key: base64.StdEncoding.EncodeToString([]byte("short")), wantErr: true},
		{name: "empty", key: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.key)
			if (err != nil) != tc.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSealOpenRoundTrip(t *testing.T) {
	box, err := New(testKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := []byte(`{"v":1,"params":{"next":"/x"}}`)

	token, err := box.Seal(payload)
	if err != nil {
		t.Fatalf("unexpected seal error: %v", err)
	}

	got, err := box.Open(token)
	if err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("round trip mismatch: got %q, expected %q", got, payload)
	}
}

func TestOpenRejectsTampering(t *testing.T) {
	box, err := New(testKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := box.Seal([]byte("payload"))
	if err != nil {
		t.Fatalf("unexpected seal error: %v", err)
	}

	flipped, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	flipped[len(flipped)-1] ^= 0xff

	testCases := []struct {
		name  string
		token string
	}{
		{name: "flipped byte", token: base64.RawURLEncoding.EncodeToString(flipped)},
		{name: "truncated", token: token[:8]},
		{name: "not base64", token: "%%%"},
		{name: "empty", token: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := box.Open(tc.token); !errors.Is(err, ErrInvalidCiphertext) {
				t.Errorf("expected ErrInvalidCiphertext, got %v", err)
			}
		})
	}
}

func TestOpenRejectsForeignKey(t *testing.T) {
	box1, _ := New(testKey)
	box2, _ := New(base64.StdEncoding.EncodeToString(make([]byte, 32)))

	token, err := box1.Seal([]byte("payload"))
	if err != nil {
		t.Fatalf("unexpected seal error: %v", err)
	}

	if _, err := box2.Open(token); !errors.Is(err, ErrInvalidCiphertext) {
		t.Errorf("expected ErrInvalidCiphertext, got %v", err)
	}
}
