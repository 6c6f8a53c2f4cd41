// Package compose implements the render operation: load the comparison and
// index templates, substitute the choices into the comparison, drop the
// result into the index and write the combined page.
//
// Every input is loaded before the first filesystem side effect, so a missing
// template leaves the output location untouched.
package compose
