package async

import "testing"

func TestLambdaZeroValueInvokeIsNoop(t *testing.T) {
	var l Lambda
	if !l.IsZero() {
		t.Fatalf("IsZero() = false for zero-value Lambda")
	}
	l.Invoke() // must not panic
}

func TestLambdaInvokesWrappedFunc(t *testing.T) {
	called := false
	l := NewLambda(func() { called = true })
	if l.IsZero() {
		t.Fatalf("IsZero() = true for a wrapped func")
	}
	l.Invoke()
	if !called {
		t.Fatalf("Invoke() did not call the wrapped func")
	}
}
