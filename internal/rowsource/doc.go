// Package rowsource reads spec rows from tabular files.
//
// CSV files carry one row per line with a header naming the columns.
// YAML files list sections, each with its rows in order. Row indices are
// 1-based and counted per section so they match the sheet a row came from.
package rowsource
