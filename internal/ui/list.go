package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tagx/internal/formatter"
	"github.com/desertthunder/tagx/internal/tags"
	"github.com/desertthunder/tagx/internal/tasks"
)

var _ list.Item = tagItem{}

// tagItem wraps a catalog [tags.Tag] and the value it holds in the first file to implement [list.Item].
type tagItem struct {
	tag     tags.Tag
	current string
}

func (i tagItem) FilterValue() string { return i.tag.String() }
func (i tagItem) Title() string       { return i.tag.String() }
func (i tagItem) Description() string {
	desc := tags.ShapeOf(i.tag).String()
	if i.current != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.current)
	}
	return desc
}

// tagItems lists every catalog tag that can be set from text and that the first file supports.
func tagItems(files []tasks.File) []list.Item {
	var items []list.Item
	for _, t := range tags.All() {
		if tags.ShapeOf(t) == tags.Binary {
			continue
		}
		item := tagItem{tag: t}
		if len(files) > 0 {
			if _, ok := files[0].FieldShape(t); !ok {
				continue
			}
			if v, ok := files[0].Get(t); ok {
				item.current = formatter.Render(v)
			}
		}
		items = append(items, item)
	}
	return items
}
