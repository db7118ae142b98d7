package quickprop

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asyncBool mimics the shape of an annotated function: it hands its result
// back over a channel from another goroutine.
func asyncBool(v bool) <-chan bool {
	ch := make(chan bool, 1)
	go func() { ch <- v }()
	return ch
}

func asyncConcat(a, b string) <-chan string {
	ch := make(chan string, 1)
	go func() { ch <- a + b }()
	return ch
}

// recorderT captures marker failures without failing the surrounding test.
type recorderT struct {
	name    string
	failed  bool
	message string
}

func (r *recorderT) Helper()      {}
func (r *recorderT) Name() string { return r.name }
func (r *recorderT) Fatalf(format string, args ...interface{}) {
	r.failed = true
	r.message = fmt.Sprintf(format, args...)
}

// run invokes fn and reports whether it failed the recorder or panicked.
func (r *recorderT) run(fn func()) (failed bool) {
	defer func() {
		if recover() != nil {
			failed = true
		}
		failed = failed || r.failed
	}()
	fn()
	return r.failed
}

func TestAwait(t *testing.T) {
	assert.True(t, Await(asyncBool(true)))
	assert.False(t, Await(asyncBool(false)))
	assert.Equal(t, "ab", Await(asyncConcat("a", "b")))
}

// The no-argument, always-true scenario, in both flavors. These are the
// hand-written equivalents of what the generator emits for
//
//	//quickprop::pool
//	func boolTest() <-chan bool { ... }
func TestBoolTestPool(t *testing.T) {
	prop := func() bool {
		return Await(asyncBool(true))
	}
	Pool(t, prop)
}

func TestBoolTestSingle(t *testing.T) {
	prop := func() bool {
		return Await(asyncBool(true))
	}
	Single(t, prop)
}

func TestPool_GeneratedArgumentsAreBoundPositionally(t *testing.T) {
	prop := func(a string, b string) bool {
		return Await(asyncConcat(a, b)) == a+b
	}
	Pool(t, prop, "min_tests = 50")
}

func TestSingle_WithPassthroughOptions(t *testing.T) {
	prop := func(n int) bool {
		return Await(asyncBool(n == n))
	}
	Single(t, prop, "min_tests = 30", "max_size = 20")
}

func TestSingle_FalsifiedPropertyFailsTheTest(t *testing.T) {
	rec := &recorderT{name: "falsified"}

	Single(rec, func(n int) bool { return false }, "min_tests = 5")

	require.True(t, rec.failed)
	assert.Contains(t, rec.message, "property falsified")
}

func TestPool_FalsifiedPropertyFailsTheTest(t *testing.T) {
	rec := &recorderT{name: "falsified"}

	Pool(rec, func(n int) bool { return false }, "min_tests = 5")

	require.True(t, rec.failed)
	assert.Contains(t, rec.message, "property falsified")
}

func TestPool_CounterExampleIsShrunk(t *testing.T) {
	rec := &recorderT{name: "shrunk"}

	// Fails for everything above 100; shrinking should walk the
	// counter-example down to the boundary.
	Pool(rec, func(n int64) bool { return n <= 100 }, "seed = 1234")

	require.True(t, rec.failed)
	assert.Contains(t, rec.message, "101")
}

func TestPool_JoinsWorkerBeforeReturning(t *testing.T) {
	var runs int64
	prop := func(n int) bool {
		atomic.AddInt64(&runs, 1)
		return true
	}

	Pool(t, prop, "min_tests = 30")

	// Pool must not return before the exploration finished.
	assert.GreaterOrEqual(t, atomic.LoadInt64(&runs), int64(30))
}

func TestSingle_SeedMakesRunsDeterministic(t *testing.T) {
	collect := func() []int {
		var values []int
		prop := func(n int) bool {
			values = append(values, n)
			return true
		}
		Single(t, prop, "seed = 7", "min_tests = 20", "workers = 1")
		return values
	}

	first := collect()
	second := collect()
	assert.Equal(t, first, second)
}

func TestMarkers_RejectInvalidPassthrough(t *testing.T) {
	tests := []struct {
		name     string
		opts     []string
		expected string
	}{
		{
			name:     "unknown option",
			opts:     []string{"frobnicate = 1"},
			expected: `unknown option "frobnicate"`,
		},
		{
			name:     "malformed value",
			opts:     []string{"workers = banana"},
			expected: `invalid value "banana"`,
		},
		{
			name:     "missing value",
			opts:     []string{"workers"},
			expected: "not of the form key = value",
		},
		{
			name:     "duplicate option",
			opts:     []string{"seed = 1", "seed = 2"},
			expected: `duplicate option "seed"`,
		},
	}

	prop := func(n int) bool { return true }

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for flavor, marker := range map[string]func(TestingT, interface{}, ...string){
				"pool":   Pool,
				"single": Single,
			} {
				rec := &recorderT{name: flavor}
				marker(rec, prop, tt.opts...)
				require.True(t, rec.failed, flavor)
				assert.Contains(t, rec.message, tt.expected, flavor)
			}
		})
	}
}

func TestMarkers_RejectNonFunctionProperty(t *testing.T) {
	rec := &recorderT{name: "notafunc"}
	Single(rec, 42)
	require.True(t, rec.failed)
	assert.Contains(t, rec.message, "property must be a function")
}

func TestSingle_PanickingPropertyFailsTheTest(t *testing.T) {
	rec := &recorderT{name: "panicking"}
	failed := rec.run(func() {
		Single(rec, func(n int) bool { panic("boom") }, "min_tests = 1")
	})
	assert.True(t, failed)
}

func TestPool_PanickingPropertyFailsTheTest(t *testing.T) {
	rec := &recorderT{name: "panicking"}
	failed := rec.run(func() {
		Pool(rec, func(n int) bool { panic("boom") }, "min_tests = 1")
	})
	assert.True(t, failed)
}

func TestSingle_StructResultTypeRoundTrip(t *testing.T) {
	type pair struct {
		Sum  int
		Same bool
	}

	asyncPair := func(a, b int) <-chan pair {
		ch := make(chan pair, 1)
		go func() { ch <- pair{Sum: a + b, Same: a == b} }()
		return ch
	}

	prop := func(a int, b int) bool {
		got := Await(asyncPair(a, b))
		return got.Sum == a+b && got.Same == (a == b)
	}
	Single(t, prop, "min_tests = 40")
}

// The bridge a variadic function gets: a slice parameter on the closure,
// spread back out at the forwarded call. The engine cannot invoke a variadic
// closure directly, so this is the only shape the wrapper may take.
func TestSingle_SliceBridgeOverVariadicFunction(t *testing.T) {
	asyncJoin := func(sep string, parts ...string) <-chan string {
		ch := make(chan string, 1)
		go func() { ch <- strings.Join(parts, sep) }()
		return ch
	}

	prop := func(sep string, parts []string) bool {
		joined := Await(asyncJoin(sep, parts...))
		want := 0
		for _, part := range parts {
			want += len(part)
		}
		if len(parts) > 1 {
			want += len(sep) * (len(parts) - 1)
		}
		return len(joined) == want
	}
	Single(t, prop, "min_tests = 40")
}

func TestReportMentionsPropertyName(t *testing.T) {
	rec := &recorderT{name: "named_property"}
	Pool(rec, func(n int) bool { return false }, "min_tests = 3")

	require.True(t, rec.failed)
	assert.True(t, strings.Contains(rec.message, "named_property"),
		"failure report should carry the registered property name: %s", rec.message)
}
