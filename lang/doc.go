// Package lang implements the bempline templating language: literal text
// interleaved with directives delimited by "{~ " and " ~}".
//
// # Syntax
//
// Variables are declared with a dollar sign and substituted at render
// time. A trailing '!' marks the variable required, a trailing '?' marks
// it optional (the default):
//
//	Dear {~ $name! ~},
//
// A backslash immediately before the opening marker escapes it, yielding
// the literal marker text:
//
//	\{~ $name ~}   renders as   {~ $name ~}
//
// Includes splice another template in place, resolved through the
// caller-supplied [Source]. "@include?" makes a missing include legal:
//
//	{~ @include header.txt ~}
//	{~ @include? footer.txt ~}
//
// Patterns are named blocks rendered zero or more times by calling code,
// which is how the language expresses repetition without loop constructs:
//
//	{~ @pattern row ~}<li>{~ $item ~}</li>{~ @end-pattern ~}
//
// A pattern body is skipped during the parent's render. Extract it with
// [Document.Pattern], bind and render each instance, and attach the output
// to the parent's slot:
//
//	doc, _ := lang.Parse(ctx, text)
//	for _, item := range items {
//		row, _ := doc.Pattern("row")
//		row.Set("item", item)
//		out, _ := row.Render()
//		doc.Attach("row", out)
//	}
//	result, err := doc.Render()
//
// # Concurrency
//
// The engine has no concurrency of its own. A parsed Document's body is
// immutable and may be shared freely; each goroutine that binds and
// renders must first obtain its own [Document.Clone]. The clone operation
// is the isolation boundary, so no further synchronization is needed.
package lang
