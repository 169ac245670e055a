// Package catalog parses resource catalog listings and derives output
// names from identifiers.
//
// A listing is a newline-delimited body of tab-separated records, as
// served by the KEGG REST list endpoints:
//
//	path:hsa00010	Glycolysis / Gluconeogenesis - Homo sapiens (human)
//	path:hsa00020	Citrate cycle (TCA cycle) - Homo sapiens (human)
//
// The first column of each record is the identifier. Identifiers expand
// into resource URLs through a Template containing the {id} placeholder,
// and map to output object keys by stripping a fixed-length prefix
// (DeriveKey).
package catalog
