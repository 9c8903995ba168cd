// Package report is the gate: it decides pass/fail from findings and
// renders them as text, JSON or SARIF. No renderer ever receives matched
// text, so none can print it.
package report
