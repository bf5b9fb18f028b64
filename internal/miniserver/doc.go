// Package miniserver provides the HTTP transport to the home-automation
// controller.
//
// It exposes exactly the two capabilities the core depends on:
//
//   - FetchStructure: downloads the raw structure document (LoxAPP3.json).
//     The bytes are returned undecoded; schema handling lives in the
//     inventory package.
//   - FetchState: reads one control's current value, handling both the
//     enveloped and flat reply layouts. This satisfies the monitor's
//     StateFetcher contract.
//
// # Error taxonomy
//
//   - ErrAuthentication: credentials rejected; surfaced with guidance and
//     never retried automatically.
//   - ErrUnreachable: transport failure; the monitor treats it as transient
//     and retries on the next polling interval.
//   - ErrRequestFailed: unexpected HTTP status.
//   - ErrStateUnavailable: a state reply without a value.
//
// Compatible with Gen 1 and Gen 2 miniservers: the legacy "LL" reply
// envelope is handled transparently.
package miniserver
