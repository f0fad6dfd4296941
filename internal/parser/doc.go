// Package parser turns raw command lines into typed commands.
//
// Parse recognises, case-insensitively and in this order: bye, list, mark,
// unmark, delete, find, the task keywords todo, deadline and event, and
// update. Task numbers are 1-based and checked against the current list
// size. Descriptions keep the whitespace they were typed with; dates accept
// yyyy-MM-dd or yyyy-MM-dd HH:mm.
package parser
