package api

import (
	"errors"
	"testing"
)

func TestKeychainSource_jsonBlob(t *testing.T) {
	store := &fakeStore{values: map[string]string{
		"Codex": `{"tokens":{"access_token":"blob-tok","account_id":"acct"}}`,
	}}
	cred, err := KeychainSource{Store: store}.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cred.Token != "blob-tok" || cred.AccountID != "acct" || cred.Origin != OriginOAuthKeychain {
		t.Fatalf("got %+v", cred)
	}
}

func TestKeychainSource_blobWithAPIKey(t *testing.T) {
	store := &fakeStore{values: map[string]string{"Codex": `{"OPENAI_API_KEY":"sk-kc"}`}}
	cred, err := KeychainSource{Store: store}.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cred.Token != "sk-kc" || cred.IsOAuth() {
		t.Fatalf("got %+v", cred)
	}
}

func TestKeychainSource_rawToken(t *testing.T) {
	store := &fakeStore{values: map[string]string{"openai-codex": "  raw-token\n"}}
	cred, err := KeychainSource{Store: store}.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cred.Token != "raw-token" || !cred.IsOAuth() {
		t.Fatalf("got %+v", cred)
	}
	want := []string{"Codex", "codex", "openai-codex"}
	if len(store.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", store.calls, want)
	}
}

func TestKeychainSource_emptyValueIsMiss(t *testing.T) {
	store := &fakeStore{values: map[string]string{"Codex": "   ", "codex": "second"}}
	cred, err := KeychainSource{Store: store}.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cred.Token != "second" {
		t.Fatalf("got %+v", cred)
	}
}

func TestKeychainSource_allMiss(t *testing.T) {
	store := &fakeStore{}
	_, err := KeychainSource{Store: store, Services: []string{"a", "b"}}.Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if len(store.calls) != 2 {
		t.Fatalf("calls = %v", store.calls)
	}
}

func TestCommandStore_commands(t *testing.T) {
	var gotName string
	var gotArgs []string
	run := func(name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte("secret\n"), nil
	}

	s := &CommandStore{GOOS: "darwin", Run: run}
	v, err := s.Lookup("Codex")
	if err != nil || v != "secret" {
		t.Fatalf("Lookup = %q, %v", v, err)
	}
	if gotName != "security" || len(gotArgs) != 4 || gotArgs[2] != "Codex" || gotArgs[3] != "-w" {
		t.Fatalf("darwin command = %s %v", gotName, gotArgs)
	}

	s.GOOS = "linux"
	if _, err := s.Lookup("codex"); err != nil {
		t.Fatal(err)
	}
	if gotName != "secret-tool" || gotArgs[0] != "lookup" || gotArgs[2] != "codex" {
		t.Fatalf("linux command = %s %v", gotName, gotArgs)
	}
}

func TestCommandStore_failures(t *testing.T) {
	s := &CommandStore{GOOS: "darwin", Run: func(string, ...string) ([]byte, error) {
		return []byte(""), nil
	}}
	if _, err := s.Lookup("Codex"); !errors.Is(err, errMiss) {
		t.Fatalf("empty output should miss, got %v", err)
	}

	s.Run = func(string, ...string) ([]byte, error) { return nil, errors.New("exit status 44") }
	if _, err := s.Lookup("Codex"); err == nil {
		t.Fatal("expected error on non-zero exit")
	}

	s.GOOS = "windows"
	if _, err := s.Lookup("Codex"); !errors.Is(err, errMiss) {
		t.Fatalf("unsupported platform should miss, got %v", err)
	}
}
