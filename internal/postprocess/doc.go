// Package postprocess rewrites rendered HTML before it leaves the server.
//
// Two independent transforms are provided:
//
//   - WrapTables wraps every <table> that is a direct child of the tree root in
//     <div class="table-wrapper"> so wide tables can scroll horizontally. Tables
//     nested inside other elements are left alone. The input tree is never
//     mutated; a new tree is built instead.
//   - Rules.Apply rewrites syntax-highlighting color literals in serialized HTML
//     text. Rules run in declaration order and each one sees the output of the
//     previous one, so a rule can rewrite text produced by an earlier rule.
//
// Middleware applies a rule list to every text/html response of a handler.
package postprocess
