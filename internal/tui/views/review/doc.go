// Package review implements the second wizard step: a read-only table over the
// confirmed products that can be re-sorted locally without querying the
// source again.
//
// The Controller always sorts from the frozen confirmation order, so any
// ordering is a pure function of that sequence and the display state. Every
// sort or description toggle emits a DisplayStateChangedMsg so the wizard can
// resume the step with the same presentation.
package review
