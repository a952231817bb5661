package sensor

import (
	"context"
	"slices"
	"testing"
	"time"
)

func TestNamesIncludesBuiltins(t *testing.T) {
	names := Names()
	for _, want := range []string{"bridge", "none", "wander"} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() = %v, missing %q", names, want)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("Names() = %v, expected sorted", names)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() of a taken name should panic")
		}
	}()
	Register("none", func(Options) Driver { return noneDriver{} })
}

func TestOpenSharesBackend(t *testing.T) {
	t.Cleanup(func() {
		if err := CloseAll(); err != nil {
			t.Errorf("CloseAll() error = %v", err)
		}
	})

	if _, err := Open("camera9000", Options{Logger: quietLogger()}); err == nil {
		t.Error("Open() of unknown backend should fail")
	}

	first, err := Open("none", Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	second, err := Open("none", Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if first != second || first.Landmarker != second.Landmarker {
		t.Error("Open() should return the shared backend")
	}

	a, err := first.NewAdapter(context.Background())
	if err != nil {
		t.Fatalf("NewAdapter() error = %v", err)
	}
	defer a.Close()

	deadline := time.Now().Add(2 * time.Second)
	for !a.Ready() {
		if time.Now().After(deadline) {
			t.Fatal("none backend never became ready")
		}
		time.Sleep(time.Millisecond)
	}
	if _, ok := a.Sample(); ok {
		t.Error("none backend should never produce a reading")
	}
}
