// Package session models one decision: the setup naming alternatives and
// criteria, the pairwise judgements collected from the browser or the CLI,
// and the evaluation that ranks the alternatives.
//
// Payloads arrive as JSON from the web client or as JSON/YAML session files.
// Judgement values accept numbers, numeric strings and fractions ("1/3").
package session
