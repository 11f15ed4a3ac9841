// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

// Package guidebook builds a browsable style guide from example blocks embedded
// in source comments.
//
// An example block opens with the /*GUIDE marker and closes at the next
// comment terminator. Its first non-blank line names the category and the
// session, separated by a pipe; the remaining lines are the example itself:
//
//	/*GUIDE Buttons|Primary
//	<button class="btn btn--primary">OK</button>
//	*/
//
// Blank lines inside a block are dropped. A header without exactly one pipe,
// or with an empty side, fails the whole run with ErrMetadataFormat.
//
// Generate a document from settings:
//
//	result, err := guidebook.Generate(ctx, guidebook.Settings{
//		Style:  "dist/style.css",
//		Source: "src/components",
//		Output: "docs",
//	})
//	if err != nil {
//		return err
//	}
//
//	fmt.Println(result.OutputPath) // docs/guidebook.html
//
// Run the pipeline step by step:
//
//	walker := guidebook.Walker{Workers: 4}
//	examples, err := walker.Walk(ctx, "src/components")
//	if err != nil {
//		return err
//	}
//
//	categories := guidebook.Aggregate(examples)
//	structure, err := guidebook.Render(guidebook.FormatMarkdown, categories)
//	if err != nil {
//		return err
//	}
//
//	base, err := guidebook.BuiltinTemplate("markdown")
//	if err != nil {
//		return err
//	}
//
//	fmt.Print(guidebook.Compose(base, "", structure, guidebook.FormatMarkdown))
//
// Categories keep the order in which they are first seen, entries keep
// discovery order, and directories are traversed depth-first in listing order,
// so an unchanged source tree always produces the same document.
package guidebook
