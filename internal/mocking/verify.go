package mocking

import (
	"fmt"
	"strings"

	perr "ghappkit/internal/platform/errors"
)

type mode uint8

const (
	modeTimes mode = iota
	modeAtLeastOnce
)

// Verification checks recorded invocations of one handle
type Verification struct {
	h    *Handle
	mode mode
	n    int
}

// Verify starts a verification expecting exactly one matching call
func Verify(p Proxy) *Verification { return &Verification{h: p.MockHandle(), mode: modeTimes, n: 1} }

// Times expects exactly n matching calls
func (v *Verification) Times(n int) *Verification {
	v.mode, v.n = modeTimes, n
	return v
}

// Never expects no matching call
func (v *Verification) Never() *Verification { return v.Times(0) }

// AtLeastOnce expects one or more matching calls
func (v *Verification) AtLeastOnce() *Verification {
	v.mode = modeAtLeastOnce
	return v
}

// Called checks calls of method with args (plain values match by equality) and marks the
// matching invocations verified on success
func (v *Verification) Called(method string, args ...any) error {
	h := v.h
	if err := requireVerifying(h.session); err != nil {
		return err
	}
	matchers := toMatchers(args)
	wantedArgs := make([]any, len(matchers))
	for i, m := range matchers {
		wantedArgs[i] = m
	}

	calls := h.snapshot()
	var hits, similar []*Invocation
	for _, inv := range calls {
		if inv.Method != method {
			continue
		}
		if matchAll(matchers, inv.Args) {
			hits = append(hits, inv)
		} else {
			similar = append(similar, inv)
		}
	}

	ok := len(hits) == v.n
	if v.mode == modeAtLeastOnce {
		ok = len(hits) > 0
	}
	if ok {
		h.mu.Lock()
		for _, inv := range hits {
			inv.Verified = true
		}
		h.mu.Unlock()
		return nil
	}

	wanted := func(multiline bool) string { return renderCall(h.Name(), method, wantedArgs, multiline) }
	switch {
	case len(hits) == 0 && len(similar) > 0:
		return argumentsAreDifferent(h.Name(), method, wantedArgs, similar)
	case len(hits) == 0:
		return wantedButNotInvoked(wanted(false), calls)
	case v.mode == modeTimes && v.n == 0:
		return perr.Verificationf("%s\nNever wanted here:\nBut invoked here:\n%s", wanted(false), listCalls(hits, false))
	default:
		return perr.Verificationf("%s\nWanted %s:\nBut was %s.", wanted(false), times(v.n), times(len(hits)))
	}
}

// VerifyNoMoreInteractions fails on the first unverified invocation across proxies
func VerifyNoMoreInteractions(proxies ...Proxy) error {
	for _, p := range proxies {
		h := p.MockHandle()
		if err := requireVerifying(h.session); err != nil {
			return err
		}
		h.mu.Lock()
		var first *Invocation
		for _, inv := range h.calls {
			if !inv.Verified {
				first = inv
				break
			}
		}
		if first == nil {
			h.mu.Unlock()
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "No interactions wanted here:\nBut found this interaction on mock '%s':\n%s\n", h.Name(), first)
		b.WriteString("***\nFor your reference, here is the list of all invocations ([?] - means unverified).\n")
		for i, inv := range h.calls {
			mark := ""
			if !inv.Verified {
				mark = "[?] "
			}
			fmt.Fprintf(&b, "%d. %s%s\n", i+1, mark, inv)
		}
		h.mu.Unlock()
		return perr.Verificationf("%s", strings.TrimSuffix(b.String(), "\n"))
	}
	return nil
}

// IgnoreStubs marks every invocation answered by a stub as verified and returns proxies
// for chaining into VerifyNoMoreInteractions
func IgnoreStubs(proxies ...Proxy) []Proxy {
	for _, p := range proxies {
		h := p.MockHandle()
		h.mu.Lock()
		for _, inv := range h.calls {
			if inv.Stubbed {
				inv.Verified = true
			}
		}
		h.mu.Unlock()
	}
	return proxies
}

func requireVerifying(s *Session) error {
	if ph := s.Phase(); ph != Verifying {
		return perr.Phasef("verification needs the verifying phase, session is %s", ph)
	}
	return nil
}

// argumentsAreDifferent prints wanted and actual calls in the block form when any of them needs it
func argumentsAreDifferent(name, method string, wanted []any, actual []*Invocation) error {
	multiline := strings.Contains(renderCall(name, method, wanted, false), "\n")
	for _, inv := range actual {
		if strings.Contains(inv.String(), "\n") {
			multiline = true
		}
	}
	return perr.Verificationf("Argument(s) are different! Wanted:\n%s\nActual invocations have different arguments:\n%s",
		renderCall(name, method, wanted, multiline), listCalls(actual, multiline))
}

func wantedButNotInvoked(wanted string, all []*Invocation) error {
	if len(all) == 0 {
		return perr.Verificationf("Wanted but not invoked:\n%s\nActually, there were zero interactions with this mock.", wanted)
	}
	return perr.Verificationf("Wanted but not invoked:\n%s\nHowever, there %s with this mock:\n%s",
		wanted, interactions(len(all)), listCalls(all, false))
}

func listCalls(calls []*Invocation, multiline bool) string {
	lines := make([]string, len(calls))
	for i, inv := range calls {
		lines[i] = renderCall(inv.Target.String(), inv.Method, inv.Args, multiline)
	}
	return strings.Join(lines, "\n")
}

func times(n int) string {
	if n == 1 {
		return "1 time"
	}
	return fmt.Sprintf("%d times", n)
}

func interactions(n int) string {
	if n == 1 {
		return "was exactly 1 interaction"
	}
	return fmt.Sprintf("were exactly %d interactions", n)
}
