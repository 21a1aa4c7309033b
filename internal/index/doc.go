// Package index provides the in-memory vector store shared by all
// indexers. Entries live for the lifetime of the process; there is no
// persistence layer behind it.
package index
