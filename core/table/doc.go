// Package table implements the list-view engine shared by every resource:
// search and field filters, single-key stable sorting, offset pagination and
// column visibility over an in-memory collection.
//
// The pipeline order is fixed: filter -> sort -> paginate -> project.
// Column visibility only affects projection, never counts.
package table
