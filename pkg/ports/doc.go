/*
Package ports defines the driven ports (interfaces) for the Formwork
engine.

These interfaces decouple the engine from the UI collaborators that
surround a form. The engine is correct without any of them; hosts plug
in real implementations (a live-region announcer, a focus manager) and
the engine calls them at the right moments.
*/
package ports
