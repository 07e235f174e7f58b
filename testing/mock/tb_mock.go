// Package mock provides a recording stand-in for testing.TB, used to
// test the assertion helpers themselves.
package mock

import "fmt"

// TBMock records the messages the assertion helpers emit.
type TBMock struct {
	ErrMsg   string
	FatalMsg string
}

// Errorf stores the formatted message in ErrMsg.
func (tb *TBMock) Errorf(format string, args ...interface{}) {
	tb.ErrMsg = fmt.Sprintf(format, args...)
}

// Fatalf stores the formatted message in FatalMsg.
func (tb *TBMock) Fatalf(format string, args ...interface{}) {
	tb.FatalMsg = fmt.Sprintf(format, args...)
}
