// Package pformat provides positional placeholder formatting with partial
// application.
//
// A template mixes literal text with placeholders of the form
//
//	{index[,alignment][:spec]}
//
// where index is a zero-based argument position, alignment is a signed
// field width (negative left-justifies, positive right-justifies) and spec
// is a numeric or date/time pattern such as C2, N3, X8, #,##0.00 or
// yyyy-MM-dd.
//
// Format consumes the placeholders that the supplied arguments can fill and
// renumbers the rest from zero, so a template can be completed over several
// calls:
//
//	t, _ := pformat.Format("{0} {2:yyyy-MM-dd} {1}", 42)
//	// t == "42 {1:yyyy-MM-dd} {0}"
//	t, _ = pformat.Format(t, 50*time.Second)
//	// t == "42 {0:yyyy-MM-dd} 00:00:50"
//
// Applying the arguments in batches yields exactly what a single call with
// all of them would.
//
// FormatWith is a simpler variant that only knows {index} tokens and fills
// them by position in the text rather than by index.
//
// Literal braces cannot be escaped: "{{0}}" is read as the text "{", the
// placeholder "{0}" and the text "}".
package pformat
