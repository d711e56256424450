// Package decode turns uploaded bytes into a ParsedTable and back.
//
// The decoder is picked from the filename alone: a name containing "csv"
// anywhere is read as CSV, otherwise a name containing "xls" is read as an
// Excel workbook. The match is a case-sensitive substring test, so
// "csvexport.txt" is read as CSV and "DATA.CSV" is rejected.
package decode
