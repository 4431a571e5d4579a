// Package report renders layout tables and consistency results as Markdown,
// converts Markdown to HTML, and writes report files.
package report
