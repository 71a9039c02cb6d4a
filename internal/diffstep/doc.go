// Package diffstep renders the diff of a step commit as annotated markdown.
//
// Each changed file becomes a title followed by a fenced diff block whose
// lines carry two gutters, the line number on the old side and on the new
// side:
//
//	##### Changed hello.txt
//	```diff
//	@@ -1 +1,2 @@
//	 ┊1┊1┊hello
//	+┊ ┊2┊world🚫⮐
//	```
package diffstep
