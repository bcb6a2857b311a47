package gateway

import (
	"errors"
	"testing"
)

const validTenant = "a3f1b2c4-5d6e-4f70-8a9b-0c1d2e3f4a5b"

func TestValidClientAccountID(t *testing.T) {
	if !ValidClientAccountID(validTenant) {
		t.Fatal("36-character hyphenated UUID must pass")
	}
	if ValidClientAccountID("abcdef1234") {
		t.Fatal("a 10-character token must fail")
	}
	if ValidClientAccountID("") {
		t.Fatal("empty string must fail")
	}
	// Right length, wrong alphabet.
	if ValidClientAccountID("zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz") {
		t.Fatal("non-hex tokens must fail")
	}
}

func TestResolveClientAccountPrecedence(t *testing.T) {
	headerID := "11111111-1111-4111-8111-111111111111"
	queryID := "22222222-2222-4222-8222-222222222222"
	fallbackID := "33333333-3333-4333-8333-333333333333"

	got, err := ResolveClientAccount(headerID, queryID, fallbackID)
	if err != nil || got != headerID {
		t.Fatalf("header must win: got %q err %v", got, err)
	}

	got, err = ResolveClientAccount("", queryID, fallbackID)
	if err != nil || got != queryID {
		t.Fatalf("query must win over fallback: got %q err %v", got, err)
	}

	got, err = ResolveClientAccount("", "", fallbackID)
	if err != nil || got != fallbackID {
		t.Fatalf("fallback must be used last: got %q err %v", got, err)
	}
}

func TestResolveClientAccountErrors(t *testing.T) {
	if _, err := ResolveClientAccount("", "", ""); !errors.Is(err, ErrMissingClientAccount) {
		t.Fatalf("expected missing-account error, got %v", err)
	}
	if _, err := ResolveClientAccount("not-a-uuid", "", ""); !errors.Is(err, ErrInvalidClientAccount) {
		t.Fatalf("expected invalid-account error, got %v", err)
	}
}
