// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package window implements the time-window gate for proposal and voting periods.

A Window is a closed-closed [Start, End] interval; boundary instants count as
inside. All predicates take the current instant as a parameter, so callers pass
time.Now() in production and fixed instants in tests:

	w := window.Window{Start: start, End: end}
	if !w.IsOpen(time.Now()) {
		// reject
	}

The server configures two independent windows: one gating the creation of user
proposals, one gating the casting of votes. Neither has side effects or reads
the clock itself.

Info produces a serializable snapshot (active/ended/not-started plus a
days-remaining countdown) for period-information endpoints.
*/
package window
