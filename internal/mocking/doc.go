// Package mocking is the selective mocking engine behind the apptest harness.
//
// A Session owns one test run: a Phase that only moves forward (Configuring, then
// Executing, then Verifying) and a registry mapping each Identity (type name + numeric id)
// to exactly one Handle. Typed proxies, provided by a Catalog, embed a Handle and route
// every method call through Handle.Invoke, which picks one of four outcomes:
//
//   - Hit: the last registered stub whose matchers accept the arguments answers.
//   - Default: no stub, and the session is configuring or verifying; the zero value is
//     returned so tests can freely touch proxies while wiring stubs or assertions.
//   - Fallback: no stub, the session is executing, and a real object is bound; the real
//     method runs with normalized arguments and any domain object it returns is wrapped
//     in a fresh, unregistered proxy so deeper calls stay interceptable.
//   - Missing: no stub and no way to fall back; a *MissingBehaviorError names the call
//     and shows how to stub it.
//
// Invocations are recorded only while executing. Fallback and missing invocations are
// recorded as already verified, so VerifyNoMoreInteractions only reports calls a test
// could have expected.
package mocking
