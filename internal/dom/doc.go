// Package dom provides the in-memory element tree the notebook widgets are
// built on.
//
// An Element has a tag, an id, an ordered class list, ordered children,
// visibility, and either plain text or literal markup as content. Tree
// mutation (AppendChild, InsertBefore, RemoveChild) keeps parent pointers
// consistent: inserting an element that already has a parent moves it.
//
// The package does not parse markup. Update stores the string verbatim and
// Text strips tags when a plain-text view is needed, which is all the
// terminal renderer requires.
package dom
