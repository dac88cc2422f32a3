/*
Package domain contains the core value types of the Formwork engine:
field configuration and state, validation rules, form snapshots,
lifecycle events, and the error taxonomy.

Types here are plain data with no behavior beyond construction helpers
and error formatting. The engine mechanics live in the internal
packages; adapters and hosts should depend on this package plus the
root facade only.
*/
package domain
