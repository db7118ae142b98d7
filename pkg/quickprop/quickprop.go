// Package quickprop is the runtime support library for generated property
// tests. The generator emits wrappers that build a synchronous bridging
// closure over an annotated channel-returning function, drive it with Await,
// and register it here. Pool runs the property exploration on a dedicated
// worker goroutine and joins on it; Single runs it inline on the test
// goroutine. Both report falsified properties, shrunk to a minimal
// counter-example, as ordinary test failures.
package quickprop

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/arbitrary"
)

// reportWidth matches gopter's console reporter default.
const reportWidth = 75

// TestingT is the subset of *testing.T the markers need. Keeping it an
// interface lets the failure paths be tested without failing the test run.
type TestingT interface {
	Helper()
	Name() string
	Fatalf(format string, args ...interface{})
}

// Await drives an asynchronous result to completion. It is deliberately
// executor-agnostic: a channel receive blocks identically no matter what
// started the producing goroutine. If the producer never sends, Await blocks
// forever; timeout policy belongs to the test harness, not to the bridge.
func Await[T any](ch <-chan T) T {
	return <-ch
}

// Single registers and runs the property inline on the calling goroutine.
// condition must be a function; its parameters are generated positionally by
// reflection-derived arbitraries, and its result is interpreted by the
// property engine (a false bool falsifies). opts are the passthrough tokens
// from the directive, validated here and nowhere earlier.
func Single(t TestingT, condition interface{}, opts ...string) {
	t.Helper()

	properties, err := assemble(t.Name(), condition, opts)
	if err != nil {
		t.Fatalf("quickprop: %v", err)
		return
	}

	var report bytes.Buffer
	if !properties.Run(gopter.NewFormatedReporter(false, reportWidth, &report)) {
		t.Fatalf("property falsified:\n%s", report.String())
	}
}

// Pool registers the property and runs the exploration on a dedicated worker
// goroutine, so a long-running search cannot interfere with anything else
// the test goroutine is responsible for. Pool joins on the worker before
// returning: the worker's execution is fully serialized relative to the
// test resuming. A panic on the worker is re-panicked on the test goroutine.
func Pool(t TestingT, condition interface{}, opts ...string) {
	t.Helper()

	properties, err := assemble(t.Name(), condition, opts)
	if err != nil {
		t.Fatalf("quickprop: %v", err)
		return
	}

	var (
		report bytes.Buffer
		passed bool
	)
	done := make(chan interface{}, 1)
	go func() {
		defer func() { done <- recover() }()
		passed = properties.Run(gopter.NewFormatedReporter(false, reportWidth, &report))
	}()

	if panicked := <-done; panicked != nil {
		panic(panicked)
	}
	if !passed {
		t.Fatalf("property falsified:\n%s", report.String())
	}
}

// assemble validates the passthrough options and builds the gopter property
// set for the condition.
func assemble(name string, condition interface{}, opts []string) (*gopter.Properties, error) {
	params, err := parseOptions(opts)
	if err != nil {
		return nil, err
	}

	prop, err := buildProp(condition)
	if err != nil {
		return nil, err
	}

	properties := gopter.NewProperties(params)
	properties.Property(name, prop)
	return properties, nil
}

// buildProp derives a property from the bridging closure. The engine binds
// generated values positionally, so a zero-parameter closure is adapted to
// take a single ignored input; there is nothing to generate for it.
func buildProp(condition interface{}) (gopter.Prop, error) {
	v := reflect.ValueOf(condition)
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("property must be a function, got %T", condition)
	}

	ft := v.Type()
	if ft.NumIn() == 0 {
		outs := make([]reflect.Type, ft.NumOut())
		for i := range outs {
			outs[i] = ft.Out(i)
		}
		adapted := reflect.MakeFunc(
			reflect.FuncOf([]reflect.Type{reflect.TypeOf(true)}, outs, false),
			func([]reflect.Value) []reflect.Value { return v.Call(nil) },
		)
		condition = adapted.Interface()
	}

	return arbitrary.DefaultArbitraries().ForAll(condition), nil
}
