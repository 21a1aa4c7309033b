// Package chunker provides the text chunking strategies used by the
// modality indexers: fixed word windows for plain text, sentence
// accumulation under a word budget for PDFs, and time windows for
// video transcripts.
package chunker
