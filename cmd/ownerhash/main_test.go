package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/imrishuroy/go-mouse-storefront/internal/owner"
)

func TestRun_PrintsUsableHash(t *testing.T) {
	var out bytes.Buffer
	if err := run(strings.NewReader("  shop-owner-token \n"), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hash := strings.TrimSpace(out.String())

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set(owner.HeaderToken, "shop-owner-token")
	if !owner.NewTokenResolver(hash).IsOwner(req) {
		t.Fatalf("printed hash %q does not accept the token", hash)
	}
}

func TestRun_EmptyToken(t *testing.T) {
	var out bytes.Buffer
	if err := run(strings.NewReader("\n"), &out); !errors.Is(err, errEmptyToken) {
		t.Fatalf("expected errEmptyToken, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}
