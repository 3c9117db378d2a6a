// Package csvsource reads species CSV files into core.Record values.
//
// Column mapping is chosen per file: a header sniffer decides whether the first
// row holds titles, titles are matched by name ("key", "common name",
// "scientific name", then by substring), and files whose titles map to nothing
// are re-read positionally (key, common, scientific = columns 0, 1, 2).
package csvsource
