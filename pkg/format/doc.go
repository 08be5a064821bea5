// Package format renders parsed stylesheets back to CSS text.
//
// Two layouts are supported. The expanded layout is meant for reading:
//
//	a,
//	b {
//	  color: red;
//	}
//
// The compressed layout drops every optional character:
//
//	a,b{color:red}
//
// Rules whose blocks would produce no output are omitted in both layouts.
// Calls to functions registered in a functions.Registry are evaluated while
// rendering and replaced by their result.
//
// Example usage:
//
//	tree, err := parser.Parse(src, parser.Options{Filename: "main.less"})
//	if err != nil {
//	    return err
//	}
//
//	out, err := format.New(format.Options{Compress: true}).Render(tree)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(out.CSS)
//
// When source maps are requested, Render also returns a version 3 source map
// whose positions refer to the parsed document.
package format
