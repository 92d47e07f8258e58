package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAsFindsWrappedError(t *testing.T) {
	t.Parallel()

	base := New(CodeNotFound, "Product not found")
	wrapped := fmt.Errorf("handler: %w", base)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code: %s", typed.Code())
	}
	if typed.Message() != "Product not found" {
		t.Fatalf("unexpected message: %q", typed.Message())
	}
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "catalog lookup failed")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Error() != "DEPENDENCY_ERROR: catalog lookup failed" {
		t.Fatalf("unexpected error string: %q", err.Error())
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !IsNotFound(New(CodeNotFound, "Order (abc) not found")) {
		t.Fatal("expected not-found match")
	}
	if IsNotFound(New(CodeValidation, "bad payload")) {
		t.Fatal("validation error must not match")
	}
	if IsNotFound(stdErrors.New("plain")) {
		t.Fatal("untyped error must not match")
	}
}
