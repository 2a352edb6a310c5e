// Package spreadsheet moves catalogue records in and out of xlsx workbooks.
//
// Export and Import share one column layout; Validate applies the catalogue
// rules before imported rows are turned into records, reporting problems by
// worksheet row number so editors can fix the file directly.
package spreadsheet
