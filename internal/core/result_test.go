package core

import (
	"errors"
	"testing"
)

func TestResultVariants(t *testing.T) {
	ok := Success(42)
	if !ok.IsSuccess() || ok.IsError() || ok.IsLoading() {
		t.Fatalf("success result has wrong kind: %v", ok.Kind())
	}
	if v, found := ok.Value(); !found || v != 42 {
		t.Fatalf("unexpected value: %v %v", v, found)
	}
	if ok.Err() != nil || ok.Message() != "" {
		t.Fatalf("success must not carry an error")
	}

	cause := errors.New("boom")
	bad := Failure[int]("Failed to load", cause)
	if !bad.IsError() || bad.IsSuccess() {
		t.Fatalf("failure result has wrong kind: %v", bad.Kind())
	}
	if _, found := bad.Value(); found {
		t.Fatalf("failure must not expose a value")
	}
	if !errors.Is(bad.Err(), cause) {
		t.Fatalf("failure error should unwrap to cause")
	}
	if bad.Err().Error() != "Failed to load" {
		t.Fatalf("unexpected error text: %q", bad.Err().Error())
	}

	var zero Result[string]
	if !zero.IsLoading() || Loading[string]().Kind() != KindLoading {
		t.Fatalf("zero result should be loading")
	}
}

func TestResultMatchCallsExactlyOneHandler(t *testing.T) {
	results := []Result[string]{Success("x"), Failure[string]("e", nil), Loading[string]()}
	for i, r := range results {
		calls := 0
		r.Match(
			func(string) { calls++ },
			func(string, error) { calls++ },
			func() { calls++ },
		)
		if calls != 1 {
			t.Fatalf("case %d: expected one handler call, got %d", i, calls)
		}
	}
}
