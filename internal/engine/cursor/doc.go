// Package cursor provides the selection value type and the motions that
// move it.
//
// A Selection holds two offsets, Start and End, and a Direction. The
// direction names the moving end: the head is End for a forward
// selection and Start for a backward one; the other end is the anchor.
// Start may exceed End; readers use Min and Max.
//
// The effective range of a selection is inclusive of the character under
// its larger offset. A collapsed selection therefore covers one
// character, which is what delete and yank operate on, and a selection at
// the very end of the buffer covers nothing.
//
// Motions are pure functions over a Text. Three helpers apply them:
//
//	cursor.Move(sel, text, cursor.Right)   // translate, anchor follows
//	cursor.Extend(sel, text, cursor.Right) // head only
//	cursor.Goto(sel, text, cursor.LineEnd) // head moves, anchor collapses
//
// Selections are plain values. Every copy is independent, and edits are
// reflected by mapping offsets through the applied edit batch with
// MapSelection.
package cursor
