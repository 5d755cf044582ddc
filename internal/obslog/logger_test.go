package obslog

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestWithOperation_Success(t *testing.T) {
	logger := Disabled()
	called := false
	err := WithOperation(logger, "compile", logrus.Fields{"marketplace": "mercado"}, func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("fn was not invoked")
	}
}

func TestWithOperation_PropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	err := WithOperation(nil, "compile", nil, func() error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}

func TestNew_LevelDefaultsToInfo(t *testing.T) {
	logger := New(Config{})
	if logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %v", logger.GetLevel())
	}
}
