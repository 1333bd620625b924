// Package layout reads notebook layouts from disk.
//
// A layout lists a notebook's tabs in order, each with a label, optional page
// content and an optional selected flag. Layouts are authored as YAML, JSON or
// JSONC (JSON with comments and trailing commas):
//
//	id: docs
//	class: notebook
//	tabs:
//	  - label: Intro
//	    content: "<p>Welcome</p>"
//	  - label: API
//	    selected: true
//	    page:
//	      tag: section
//	      children:
//	        - {tag: h2, text: Endpoints}
//
// "page" is accepted as an alias for "content". Errors are returned as
// *LayoutError; GetTroubleshootingHint turns them into advice for the user.
package layout
