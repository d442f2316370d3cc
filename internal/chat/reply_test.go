package chat

import (
	"errors"
	"strings"
	"testing"
)

func TestReply_EmptyMessage(t *testing.T) {
	if _, err := Reply("", "", "free"); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := Reply("   ", "", "free"); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage for whitespace, got %v", err)
	}
}

func TestReply_DefaultPersona(t *testing.T) {
	reply, err := Reply("merhaba", "", "free")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(reply, "Arkadaş modu:") {
		t.Fatalf("expected default persona prefix, got %q", reply)
	}
}

func TestReply_PersonaCapitalized(t *testing.T) {
	reply, err := Reply("merhaba", "mentor", "free")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(reply, "Mentor modu:") {
		t.Fatalf("expected capitalized persona prefix, got %q", reply)
	}
}

func TestReply_VariesByPlan(t *testing.T) {
	free, err := Reply("merhaba", "", "free")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	pro, err := Reply("merhaba", "", "pro")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if free == pro {
		t.Fatalf("expected plan tier to vary the reply")
	}

	unknown, err := Reply("merhaba", "", "enterprise")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if unknown != free {
		t.Fatalf("expected unknown plan to fall back to the free style")
	}
}
