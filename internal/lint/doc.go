// Package lint is the rule-evaluation engine: rules register enter and
// exit listeners per node kind, and Traverse walks each file exactly once,
// dispatching to every listener in registration order.
//
// A rule never sees another rule's state. Per-file state lives in the
// closures a rule installs from Listen, which is called once per file.
// Listeners get a *Context exposing the current node, the ancestor stack,
// the scope cursor, the semantic bridge and the token stream, and report
// through it. A listener that panics is recovered; the failure is traced
// and recorded in Result.Failures while the walk goes on.
package lint
