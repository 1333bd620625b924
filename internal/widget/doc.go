// Package widget provides the capability set shared by notebook components.
//
// A Widget wraps a dom.Element and adds two observer registries:
//
//   - DOM-level events bound with Observe and dispatched with Fire (for
//     example EventClick when the user activates a tab)
//   - signals connected with Connect and raised with EmitSignal, carrying an
//     arbitrary payload
//
// Both registries fan out synchronously, in registration order. Emission is
// re-entrant: a handler may emit further signals or mutate widget state, and
// those nested calls complete before the outer emission moves on to its next
// handler. Handlers connected during an emission are only called from the
// next emission onwards.
//
// Registry is the resolution helper: it turns an id, an element or an
// instance into the live registered instance, or reports that nothing
// resolved.
package widget
