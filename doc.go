// Package linejson processes streams of JSON records, one record per line
// (sometimes called NDJSON or JSON Lines).
//
// The package is organized into several sub-packages:
//
// - encoding/json: decoder for one-value-per-line JSON, and compact encoder
// - encoding/csv: encoder for rows of text fields
// - record: in-memory JSON values which keep key order and number literals
// - transform: the operations (grep, compare, replace, extract, uniq, where)
// - pipeline: reads the input line by line and drives a transformer
// - token: the tokens produced by the JSON decoder
//
// A run looks like this:
//
//	read line -> decode record -> transform -> encode output
//
// Records are processed one at a time in input order, so output starts
// straight away and memory use does not grow with the input, except for
// uniq, which has to see every record before it can output anything.
//
// The CLI utility is in the directory cmd/linejson. You can install it with:
//
//	go install github.com/steinarvk/linejson/cmd/linejson
package linejson
