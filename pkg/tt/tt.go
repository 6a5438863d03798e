// Package tt supports table-driven tests of plain functions with little
// boilerplate:
//
//	tt.Test(t, tt.Fn("ParseTarget", ParseTarget), tt.Table{
//		tt.Args("x.db").Rets("sqlite", "x.db", nil),
//	})
package tt

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Table is a list of test cases.
type Table []*Case

// Case is a test case, created by Args and completed by Rets.
type Case struct {
	args []any
	rets []any
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets sets the wanted return values and returns the receiver. Values that
// implement Matcher are matched by calling Match; the rest are compared with
// cmp.Equal.
func (c *Case) Rets(rets ...any) *Case {
	c.rets = rets
	return c
}

// FnToTest is a function under test.
type FnToTest struct {
	name    string
	body    any
	argsFmt string
}

// Fn makes a FnToTest from the name used in error messages and the function.
func Fn(name string, body any) *FnToTest {
	return &FnToTest{name: name, body: body}
}

// ArgsFmt sets the format of arguments in error messages and returns fn.
func (fn *FnToTest) ArgsFmt(s string) *FnToTest {
	fn.argsFmt = s
	return fn
}

// T is the part of testing.T used by Test.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test calls fn with the arguments of each case and reports the cases whose
// return values don't match.
func Test(t T, fn *FnToTest, tests Table) {
	t.Helper()
	for _, test := range tests {
		rets := call(fn.body, test.args)
		if match(test.rets, rets) {
			continue
		}
		args := fn.argsFmt
		if args == "" {
			args = strings.TrimSuffix(strings.Repeat("%v, ", len(test.args)), ", ")
		}
		t.Errorf("%s(%s) returns (-Wanted +Actual):\n%s",
			fn.name, fmt.Sprintf(args, test.args...), cmp.Diff(test.rets, rets, matcherOption))
	}
}

// Matcher customizes how a return value is matched.
type Matcher interface {
	Match(ret any) bool
}

// Any matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(any) bool { return true }

// AnyError matches any non-nil error.
var AnyError Matcher = anyErrorMatcher{}

type anyErrorMatcher struct{}

func (anyErrorMatcher) Match(ret any) bool {
	err, ok := ret.(error)
	return ok && err != nil
}

// matcherOption makes cmp.Diff report no difference for matched values. It
// compares []any slices element-wise, so it only applies at the top level.
var matcherOption = cmp.FilterValues(func(m, _ any) bool {
	_, ok := m.(Matcher)
	return ok
}, cmp.Comparer(func(m, a any) bool { return m.(Matcher).Match(a) }))

func match(want, got []any) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if m, ok := want[i].(Matcher); ok {
			if !m.Match(got[i]) {
				return false
			}
		} else if !cmp.Equal(want[i], got[i]) {
			return false
		}
	}
	return true
}

func call(fn any, args []any) []any {
	fnType := reflect.TypeOf(fn)
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			// Use a nil of the parameter's type.
			in[i] = reflect.Zero(paramType(fnType, i))
		} else {
			in[i] = reflect.ValueOf(arg)
		}
	}
	out := reflect.ValueOf(fn).Call(in)
	rets := make([]any, len(out))
	for i, v := range out {
		rets[i] = v.Interface()
	}
	return rets
}

func paramType(fnType reflect.Type, i int) reflect.Type {
	if fnType.IsVariadic() && i >= fnType.NumIn()-1 {
		return fnType.In(fnType.NumIn() - 1).Elem()
	}
	return fnType.In(i)
}
