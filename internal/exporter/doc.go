// Package exporter writes analysis results as CSV files or XLSX workbooks.
//
// CSVWriter and XLSXWriter both satisfy TableWriter, so services pick the output
// format from configuration. The *Records functions turn engine results into
// header and record slices:
//
//	headers, records := exporter.ControlSummaryRecords(analyses, 4)
//	path, err := writer.Write("plant_analysis_summary", headers, records)
//
// Undefined capability indices are written as "undefined" and absent one-sided
// limits as empty cells.
package exporter
