package gallery

import (
	"encoding/base64"
	"testing"
)

func makeToken(header, payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(header)) + "." + enc.EncodeToString([]byte(payload)) + ".c2lnbmF0dXJl"
}

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:    "valid token",
			token:   makeToken(`{"alg":"HS256","typ":"JWT"}`, `{"sub":"public-user"}`),
			wantErr: false,
		},
		{
			name:    "expired token still passes",
			token:   makeToken(`{"alg":"HS256","typ":"JWT"}`, `{"sub":"public-user","exp":1000}`),
			wantErr: false,
		},
		{
			name:    "too short",
			token:   "a.b.c",
			wantErr: true,
		},
		{
			name:    "two parts",
			token:   "aaaaaaaaaaaaaaaaaaaaaaa.bbbbbbbbbbbbbbbbbbbb",
			wantErr: true,
		},
		{
			name:    "missing typ",
			token:   makeToken(`{"alg":"HS256"}`, `{"sub":"public-user"}`),
			wantErr: true,
		},
		{
			name:    "header not base64 json",
			token:   "!!!!!!!!!!!!!!!!!!!!.payloadpayload.signature",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateToken(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Big Ben", "Big_Ben"},
		{"Diocletian's Cellars", "Diocletians_Cellars"},
		{"Sagrada Família ", "Sagrada_Família"},
		{"Mont-Saint-Michel (France)", "Mont-Saint-Michel_France"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SafeName(tt.input); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
