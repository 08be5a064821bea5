// Package resolver flattens a stylesheet and everything it imports into a single document.
//
// The resolver reads an entry file line by line and looks for import directives such as
//
//	@import "buttons.less";
//	@import 'grid.less';
//	@import url(print.less);
//	//@import "commented-out.less";
//
// Each directive is replaced in place with the fully resolved content of the referenced file,
// which is located relative to the directory of the file containing the directive. Resolution is a
// depth-first, pre-order traversal of the import graph.
//
// # Deduplication
//
// Every file is inlined at most once per top-level Resolve call. The absolute paths already
// inlined are tracked in an InclusionSet that is shared by reference across the whole recursion,
// so diamond shaped graphs inline the common file only at its first site and cyclic graphs
// terminate. A repeated reference contributes empty content and is not an error.
//
// # Indentation
//
// Whitespace preceding a directive is carried into the inlined content. Every non-empty line of an
// imported file is prefixed with the accumulated indentation of all enclosing import sites:
//
//	main.less:      "  @import \"b.less\";"
//	b.less:         "    @import \"c.less\";"
//
// puts two spaces in front of b.less's own lines and six in front of c.less's lines.
//
// # Newlines
//
// Each file is split and re-joined using its own newline sequence, so a CRLF file importing an
// LF file keeps both files' line content intact.
//
// # Missing files
//
// A directive pointing at a file that does not exist is replaced with the placeholder
//
//	Error including "/abs/path/missing.less"
//
// and a warning is logged. Resolution of the remaining document continues; the path is recorded in
// Document.Missing so callers can refuse to compile the result.
package resolver
