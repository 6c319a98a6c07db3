package main

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/lkwhite/tRNAs-in-space/cmd"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const pageHeader = `---
layout: default
title: %s
nav_order: %d
---
`

// navOrder fixes each command page's position in the docs sidebar
var navOrder = map[string]int{
	"trnaspace":         0,
	"trnaspace_unify":   1,
	"trnaspace_reindex": 2,
	"trnaspace_labels":  3,
}

// makeDocs parses the commands and outputs Markdown documentation files
func makeDocs() {
	if err := doc.GenMarkdownTreeCustom(cmd.RootCmd, "./docs", filePrepender, linkHandler); err != nil {
		fmt.Println(err.Error())
	}
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	return fmt.Sprintf(pageHeader, base, navOrder[base])
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	if base == "trnaspace" {
		return "/"
	}
	return base
}
