// Package workbook lays records out as a multi-sheet spreadsheet: an
// "All Songs" sheet ordered by album and track, then one sheet per album
// ordered by track. Plan decides the layout and sheet names; Write renders a
// plan to an .xlsx file with excelize.
package workbook
