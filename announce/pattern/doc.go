// Package pattern provides precompiled name matching for subscription
// filters.
//
// A Set splits its input into exact names and Unix-shell-style glob patterns
// ("temp.*" matches "temp.value" but not "pressure.value"). Patterns are
// compiled once when the Set is built, so matching during dispatch costs a
// set lookup plus pattern evaluation, never a recompilation.
package pattern
